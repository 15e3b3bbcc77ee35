package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tinychange.toml")

	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `fragments_dir = ".tinychange"`)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tinychange.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0o644))

	err := WriteDefault(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigExists))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))
}

func TestDefaultTemplate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path    string
		want    string
		wantErr bool
	}{
		"toml":        {path: "tinychange.toml", want: "naming = \"buzzword\""},
		"yml":         {path: "tinychange.yml", want: "naming: buzzword"},
		"yaml":        {path: "conf/tinychange.YAML", want: "naming: buzzword"},
		"json":        {path: "tinychange.json", want: `"naming": "buzzword"`},
		"unsupported": {path: "tinychange.ini", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			data, err := DefaultTemplate(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}
}

func TestGetDefaults_ReturnsFreshCategories(t *testing.T) {
	t.Parallel()

	first := GetDefaults()["categories"].([]string)
	first[0] = "Mutated"

	second := GetDefaults()["categories"].([]string)
	assert.Equal(t, "Added", second[0])
	assert.Equal(t, "Added", DefaultCategories[0])
}
