package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/chronicler/internal/chronicle"
)

// run executes a fresh command tree against an isolated home and database.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("CHRONICLER_LOG_FORMAT", "json")
	return filepath.Join(dir, "data", "chronicler.db")
}

func TestVersion(t *testing.T) {
	db := isolate(t)
	out, err := run(t, db, "version")
	require.NoError(t, err)
	assert.Equal(t, "chronicler "+Version+"\n", out)
}

func TestConfigShowMasksAdminKey(t *testing.T) {
	db := isolate(t)
	t.Setenv("CHRONICLER_ADMIN_KEY", "hunter2")

	out, err := run(t, db, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "db_path: "+db)
	assert.Contains(t, out, "max_years_apart: 20")
	assert.NotContains(t, out, "hunter2")
}

func TestSeedThenCompileAll(t *testing.T) {
	db := isolate(t)

	out, err := run(t, db, "seed", "--civs", "2", "--seed", "11", "--years", "150")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded")

	outDir := filepath.Join(t.TempDir(), "out")
	_, err = run(t, db, "compile", "--all", "--format", "json", "--out", outDir)
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(outDir, "*.json"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	var cc chronicle.CompiledChronicle
	require.NoError(t, json.Unmarshal(data, &cc))
	assert.True(t, strings.HasPrefix(cc.Title, "THE CHRONICLES OF "))
	assert.NotEmpty(t, cc.Chapters)
}

func TestImportAndCompileText(t *testing.T) {
	db := isolate(t)

	file := filepath.Join(t.TempDir(), "valdoria.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
civilization:
  id: valdoria
  name: Valdoria
events:
  - id: e1
    year: 1
    title: The Founding
    description: A city rose.
    type: political
    category: founding
    significance: 3.2
  - id: e2
    year: 12
    title: The Great War
    description: War came.
    type: Military
    category: Conflict
    significance: 4.1
`), 0o644))

	out, err := run(t, db, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 civilizations with 2 events.")

	out, err = run(t, db, "compile", "valdoria", "--archive")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "THE CHRONICLES OF VALDORIA\n"))
	assert.Contains(t, strings.ToLower(out), "war came.")
}

func TestImportRejectsMalformed(t *testing.T) {
	db := isolate(t)

	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"civilization":{"id":"x","name":"X"},"events":[{"id":"b","year":1,"title":"?","type":"Sorcery","category":"Hero","significance":1}]}]`), 0o644))

	_, err := run(t, db, "import", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sorcery")
}

func TestCompileRequiresTarget(t *testing.T) {
	db := isolate(t)

	_, err := run(t, db, "compile")
	assert.ErrorContains(t, err, "--all")

	_, err = run(t, db, "compile", "--all", "--format", "pdf")
	assert.ErrorContains(t, err, "unknown format")
}

func TestCompileUnknownCivilization(t *testing.T) {
	db := isolate(t)

	_, err := run(t, db, "compile", "nowhere")
	assert.ErrorIs(t, err, chronicle.ErrCivilizationNotFound)
}
