package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_AppendPreservesOrder(t *testing.T) {
	tbl := New("id", "name")
	tbl.Append(Row{"id": "1"}, Row{"id": "2"}, Row{"id": "3"})

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, "1", tbl.Rows[0].Get("id"))
	assert.Equal(t, "3", tbl.Rows[2].Get("id"))
}

func TestTable_EnsureColumns(t *testing.T) {
	tbl := New("id")
	tbl.EnsureColumns("id", "extra")

	assert.Equal(t, []string{"id", "extra"}, tbl.Columns)
}

func TestTable_KeySet(t *testing.T) {
	tbl := New("id")
	tbl.Append(Row{"id": "a"}, Row{"id": "b"}, Row{"id": "a"})

	set := tbl.KeySet("id")
	assert.Len(t, set, 2)
	_, ok := set["a"]
	assert.True(t, ok)
}

func TestTable_IndexFirstWins(t *testing.T) {
	tbl := New("id", "v")
	tbl.Append(Row{"id": "a", "v": "first"}, Row{"id": "a", "v": "second"})

	idx := tbl.Index("id")
	assert.Equal(t, "first", idx["a"].Get("v"))
}

func TestRow_CloneIsIndependent(t *testing.T) {
	orig := Row{"id": "a"}
	clone := orig.Clone()
	clone["id"] = "b"

	assert.Equal(t, "a", orig.Get("id"))
}

func TestNilTableReads(t *testing.T) {
	var tbl *Table

	assert.Equal(t, 0, tbl.Len())
	assert.Empty(t, tbl.KeySet("id"))
	assert.Empty(t, tbl.Index("id"))
}
