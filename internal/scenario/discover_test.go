package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleYAML = `
loan:
  principal: 100000
  annual_interest_rate_percent: 5
  monthly_payment: 1500
  term_months: 120
`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestDiscover(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.yaml"), singleYAML)
	writeFile(t, filepath.Join(dir, "a.json"), "{}")
	writeFile(t, filepath.Join(dir, "nested", "c.YML"), singleYAML)
	writeFile(t, filepath.Join(dir, "notes.txt"), "skip me")
	writeFile(t, filepath.Join(dir, ".hidden", "d.yaml"), singleYAML)

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "nested", "c.YML"),
	}, files)

	missing, err := Discover(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestLoadDirNamesFromFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "conservative.yaml"), singleYAML)
	writeFile(t, filepath.Join(dir, "list.yaml"), multiYAML)

	f, err := Load(dir)
	require.NoError(t, err)

	var names []string
	for _, s := range f.All() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"conservative", "baseline", "aggressive"}, names)
}

func TestLoadDirRejectsBadFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.yaml"), singleYAML)
	writeFile(t, filepath.Join(dir, "broken.yaml"), "scenarios: [")

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")

	_, err = LoadDir(t.TempDir())
	assert.Error(t, err)
}
