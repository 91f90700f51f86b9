package csvio_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline/retaildq/internal/csvio"
	"github.com/fieldline/retaildq/internal/table"
)

func TestRead_HeaderIsColumnOrder(t *testing.T) {
	in := "customer_id,age,city\nC001,34,Northville\nC002,51,Southtown\n"

	got, err := csvio.Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"customer_id", "age", "city"}, got.Columns)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "Southtown", got.Rows[1].Get("city"))
}

func TestRead_ShortRecordLeavesColumnsAbsent(t *testing.T) {
	in := "customer_id,age,city\nC001,34\n"

	got, err := csvio.Read(strings.NewReader(in))
	require.NoError(t, err)
	row := got.Rows[0]
	_, present := row["city"]
	assert.False(t, present, "missing trailing cell stays absent, not blank")
	assert.Equal(t, "", row.Get("city"))
}

func TestRead_ExtraCellsRejected(t *testing.T) {
	in := "customer_id,age\nC001,34,Northville\n"

	_, err := csvio.Read(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 fields")
}

func TestRead_MissingHeader(t *testing.T) {
	_, err := csvio.Read(strings.NewReader(""))
	assert.Error(t, err)
}

func TestWrite_RoundTrip(t *testing.T) {
	src := table.New("a", "b")
	src.Append(
		table.Row{"a": "1", "b": "x,y"},
		table.Row{"a": "2"},
	)

	var buf bytes.Buffer
	require.NoError(t, csvio.Write(&buf, src))
	assert.Equal(t, "a,b\n1,\"x,y\"\n2,\n", buf.String())

	back, err := csvio.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Columns, back.Columns)
	assert.Equal(t, "x,y", back.Rows[0].Get("b"))
}

func TestWriteFileReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	src := table.New("store_id", "city")
	src.Append(table.Row{"store_id": "S001", "city": "Northville"})

	require.NoError(t, csvio.WriteFile(path, src))

	got, err := csvio.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "S001", got.Rows[0].Get("store_id"))
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := csvio.ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
