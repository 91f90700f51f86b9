package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with args and captures stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInvalidFormatRejected(t *testing.T) {
	_, err := runCommand(t, "schema", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestSchemaListsTables(t *testing.T) {
	out, err := runCommand(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "customers")
	assert.Contains(t, out, "rejected_transactions")
	assert.Contains(t, out, "merged_transactions")
	assert.Contains(t, out, "batches")
}

func TestSchemaSingleTableShowsDomains(t *testing.T) {
	out, err := runCommand(t, "schema", "customers", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string              `json:"status"`
		Data   []map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	domains := map[string]string{}
	for _, row := range resp.Data {
		domains[row["column"]] = row["domain"]
	}
	assert.Equal(t, "F|M|O", domains["gender"])
	assert.Equal(t, "Bronze|Silver|Gold|Platinum", domains["loyalty_tier"])
	assert.Equal(t, "", domains["customer_id"])
}

func TestSchemaUnknownTable(t *testing.T) {
	_, err := runCommand(t, "schema", "nope")
	assert.Error(t, err)
}

func TestIngestValidateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "test.db")

	csvPath := filepath.Join(dir, "customers.csv")
	data := "customer_id,gender,age,join_date,loyalty_tier,region,city,preferred_channel\n" +
		"C001,F,34,2023-05-10,Bronze,North,Northville,Online\n" +
		"C002,M,200,2023-05-10,Bronze,North,Northville,Online\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(data), 0o644))

	out, err := runCommand(t, "ingest", "customers", csvPath, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "received=2 accepted=1 rejected=1")
	assert.Contains(t, out, "C002: Age out of range (16–90);")

	// A repeat submission trips the uniqueness rule against stored rows.
	out, err = runCommand(t, "ingest", "customers", csvPath, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "accepted=0 rejected=2")
	assert.Contains(t, out, "customer_id not unique")
}

func TestValidateDoesNotPersist(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "test.db")

	csvPath := filepath.Join(dir, "stores.csv")
	data := "store_id,store_type,region,city,opening_date\n" +
		"S001,Mall,North,Northville,2020-01-15\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(data), 0o644))

	out, err := runCommand(t, "validate", "stores", csvPath, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "accepted=1")

	// Same batch still validates clean: nothing was stored.
	out, err = runCommand(t, "validate", "stores", csvPath, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "accepted=1")
}

func TestIngestUnknownEntity(t *testing.T) {
	_, err := runCommand(t, "ingest", "orders", "whatever.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity")
}

func TestQueryCommand(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "test.db")

	csvPath := filepath.Join(dir, "stores.csv")
	data := "store_id,store_type,region,city,opening_date\n" +
		"S001,Mall,North,Northville,2020-01-15\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(data), 0o644))
	_, err := runCommand(t, "ingest", "stores", csvPath, "--db", db)
	require.NoError(t, err)

	out, err := runCommand(t, "query", "SELECT store_id FROM stores", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "S001")

	_, err = runCommand(t, "query", "DELETE FROM stores", "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only SELECT")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "test.db")

	csvPath := filepath.Join(dir, "stores.csv")
	data := "store_id,store_type,region,city,opening_date\n" +
		"S001,Mall,North,Northville,2020-01-15\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(data), 0o644))
	_, err := runCommand(t, "ingest", "stores", csvPath, "--db", db)
	require.NoError(t, err)

	outPath := filepath.Join(dir, "export.csv")
	_, err = runCommand(t, "export", "stores", outPath, "--db", db)
	require.NoError(t, err)

	exported, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(exported)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "store_id,store_type,region,city,opening_date", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "S001,"))
}
