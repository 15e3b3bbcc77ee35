package changelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/tinychange/internal/fragment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFragment(t *testing.T, dir, name string, c fragment.Change) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(fragment.Encode(c)), 0o644))
	return path
}

func newMergeOptions(t *testing.T) MergeOptions {
	t.Helper()
	root := t.TempDir()
	return MergeOptions{
		FragmentsDir: filepath.Join(root, ".tinychange"),
		Changelog:    filepath.Join(root, "CHANGELOG.md"),
		Categories:   keepACategories,
	}
}

func TestMergeFiles(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		keep        bool
		dryRun      bool
		wantWritten bool
		wantRemain  bool
	}{
		"deletes fragments after writing": {wantWritten: true},
		"keep leaves fragments":           {keep: true, wantWritten: true, wantRemain: true},
		"dry run touches nothing":         {dryRun: true, wantRemain: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts := newMergeOptions(t)
			opts.Keep = tt.keep
			opts.DryRun = tt.dryRun

			a := writeFragment(t, opts.FragmentsDir, "a.md", fragment.Change{Kind: "Fixed", Message: "crash", Author: "Jo"})
			b := writeFragment(t, opts.FragmentsDir, "b.md", fragment.Change{Kind: "Added", Message: "Support X", Author: "Jo"})

			report, err := MergeFiles(opts)
			require.NoError(t, err)

			want := "# Changelog\n\n## [Unreleased]\n\n### Added\n\n- Support X (by Jo)\n\n### Fixed\n\n- crash (by Jo)\n"
			assert.Equal(t, want, report.Content)
			assert.Equal(t, StrategyCreated, report.Strategy)
			assert.Len(t, report.Fragments, 2)
			assert.Equal(t, tt.wantWritten, report.Written)

			data, err := os.ReadFile(opts.Changelog)
			if tt.wantWritten {
				require.NoError(t, err)
				assert.Equal(t, want, string(data))
			} else {
				assert.True(t, os.IsNotExist(err))
			}

			for _, path := range []string{a, b} {
				_, err := os.Stat(path)
				if tt.wantRemain {
					assert.NoError(t, err)
				} else {
					assert.True(t, os.IsNotExist(err))
				}
			}
			if tt.wantRemain {
				assert.Empty(t, report.Deleted)
			} else {
				assert.Equal(t, []string{a, b}, report.Deleted)
			}
		})
	}
}

func TestMergeFiles_NoFragments(t *testing.T) {
	t.Parallel()

	opts := newMergeOptions(t)
	require.NoError(t, os.WriteFile(opts.Changelog, []byte("# Changelog\n"), 0o644))

	report, err := MergeFiles(opts)
	require.NoError(t, err)
	assert.Empty(t, report.Fragments)
	assert.False(t, report.Written)

	data, err := os.ReadFile(opts.Changelog)
	require.NoError(t, err)
	assert.Equal(t, "# Changelog\n", string(data))
}

func TestCheckDocument(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content   *string
		wantMerge bool
	}{
		"missing changelog": {},
		"unreleased section": {
			content: strPtr("# Changelog\n\n## [Unreleased]\n\n### Added\n\n- a (by x)\n"),
		},
		"changelog heading only": {
			content: strPtr("# Changelog\n\nIntro\n"),
		},
		"stray content between categories": {
			content:   strPtr("# Changelog\n\n## [Unreleased]\n\n### Added\n\n- a (by x)\n\n### Mystery\n\n- ?\n\n### Fixed\n\n- b (by y)\n"),
			wantMerge: true,
		},
		"no anchor section": {
			content:   strPtr("Notes without headings\n"),
			wantMerge: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "CHANGELOG.md")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}

			err := CheckDocument(path, keepACategories)
			if !tt.wantMerge {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, IsMergeError(err))
			}

			if tt.content != nil {
				data, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, *tt.content, string(data))
			} else {
				assert.NoFileExists(t, path)
			}
		})
	}
}

func TestMergeFiles_StructureErrorLeavesFilesUntouched(t *testing.T) {
	t.Parallel()

	opts := newMergeOptions(t)
	original := "# Changelog\n\n## [Unreleased]\n\n### Added\n\n- a (by x)\n\n### Mystery\n\n- ?\n\n### Fixed\n\n- b (by y)\n"
	require.NoError(t, os.WriteFile(opts.Changelog, []byte(original), 0o644))
	frag := writeFragment(t, opts.FragmentsDir, "a.md", fragment.Change{Kind: "Added", Message: "n", Author: "z"})

	_, err := MergeFiles(opts)
	require.Error(t, err)
	assert.True(t, IsMergeError(err))
	assert.Contains(t, err.Error(), "merging into "+opts.Changelog)

	data, err := os.ReadFile(opts.Changelog)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))

	_, err = os.Stat(frag)
	assert.NoError(t, err)
}

func TestMergeFiles_MalformedFragmentAbortsBatch(t *testing.T) {
	t.Parallel()

	opts := newMergeOptions(t)
	good := writeFragment(t, opts.FragmentsDir, "a.md", fragment.Change{Kind: "Added", Message: "ok", Author: "z"})
	require.NoError(t, os.WriteFile(filepath.Join(opts.FragmentsDir, "b.md"), []byte("- Author: z\n---\nno kind\n"), 0o644))

	_, err := MergeFiles(opts)
	require.Error(t, err)

	var fileErr *fragment.FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, filepath.Join(opts.FragmentsDir, "b.md"), fileErr.Path)
	assert.True(t, fragment.IsFormatError(err))

	_, err = os.Stat(opts.Changelog)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(good)
	assert.NoError(t, err)
}

func TestMergeFiles_IntoExistingChangelog(t *testing.T) {
	t.Parallel()

	opts := newMergeOptions(t)
	original := "# Changelog\n\n## [0.1.0] - 2024-01-01\n\n### Added\n\n- Initial (by A)\n"
	require.NoError(t, os.WriteFile(opts.Changelog, []byte(original), 0o600))
	writeFragment(t, opts.FragmentsDir, "a.md", fragment.Change{Kind: "Added", Message: "New", Author: "B"})

	report, err := MergeFiles(opts)
	require.NoError(t, err)
	assert.Equal(t, StrategyInsertedUnreleased, report.Strategy)

	data, err := os.ReadFile(opts.Changelog)
	require.NoError(t, err)
	assert.Equal(t, "# Changelog\n\n## [Unreleased]\n\n### Added\n\n- New (by B)\n\n"+
		"## [0.1.0] - 2024-01-01\n\n### Added\n\n- Initial (by A)\n", string(data))

	info, err := os.Stat(opts.Changelog)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
