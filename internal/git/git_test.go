package git

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateGlobalConfig points the global git configuration at an empty
// home directory and clears GIT_AUTHOR_NAME.
func isolateGlobalConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv(AuthorEnv, "")
	return home
}

func initRepo(t *testing.T, authorName, userName string) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.Author.Name = authorName
	cfg.User.Name = userName
	require.NoError(t, repo.SetConfig(cfg))

	return dir
}

func TestFindAuthor(t *testing.T) {
	tests := map[string]struct {
		authorName string
		userName   string
		env        string
		wantName   string
		wantSource AuthorSource
		wantOK     bool
	}{
		"author config wins": {
			authorName: "Ada", userName: "Grace", env: "Linus",
			wantName: "Ada", wantSource: SourceAuthorConfig, wantOK: true,
		},
		"environment before user config": {
			userName: "Grace", env: "Linus",
			wantName: "Linus", wantSource: SourceEnv, wantOK: true,
		},
		"user config last": {
			userName: "Grace",
			wantName: "Grace", wantSource: SourceUserConfig, wantOK: true,
		},
		"blank values are ignored": {
			authorName: "  ", env: " ",
			wantOK: false,
		},
		"nothing configured": {
			wantOK: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateGlobalConfig(t)
			dir := initRepo(t, tt.authorName, tt.userName)
			t.Setenv(AuthorEnv, tt.env)

			got, source, ok := FindAuthor(dir)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, got)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestFindAuthor_Subdirectory(t *testing.T) {
	isolateGlobalConfig(t)
	dir := initRepo(t, "Ada", "")
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	got, source, ok := FindAuthor(sub)
	require.True(t, ok)
	assert.Equal(t, "Ada", got)
	assert.Equal(t, SourceAuthorConfig, source)
}

func TestFindAuthor_GlobalConfigOutsideRepository(t *testing.T) {
	home := isolateGlobalConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".gitconfig"), []byte("[user]\n\tname = Global Grace\n"), 0o644))

	got, source, ok := FindAuthor(t.TempDir())
	require.True(t, ok)
	assert.Equal(t, "Global Grace", got)
	assert.Equal(t, SourceUserConfig, source)
}

func TestFindAuthor_EnvironmentOutsideRepository(t *testing.T) {
	isolateGlobalConfig(t)
	t.Setenv(AuthorEnv, "Linus")

	got, source, ok := FindAuthor(t.TempDir())
	require.True(t, ok)
	assert.Equal(t, "Linus", got)
	assert.Equal(t, SourceEnv, source)
}

func TestRepositoryRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := RepositoryRoot(sub)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestRepositoryRoot_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := RepositoryRoot(t.TempDir())
	assert.Error(t, err)
}

func TestSetDebugLogger(t *testing.T) {
	var messages []string
	SetDebugLogger(func(format string, args ...any) {
		messages = append(messages, fmt.Sprintf(format, args...))
	})
	t.Cleanup(func() { SetDebugLogger(nil) })

	logDebug("[git] hello %s", "world")
	assert.Equal(t, []string{"[git] hello world"}, messages)
}
