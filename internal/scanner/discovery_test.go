package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o644))

	return path
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()

	a := touch(t, filepath.Join(root, "a.pdf"))
	b := touch(t, filepath.Join(root, "B.PDF"))
	notes := touch(t, filepath.Join(root, "notes.txt"))
	nested := touch(t, filepath.Join(root, "sub", "c.pdf"))
	explicit := touch(t, filepath.Join(t.TempDir(), "explicit.txt"))

	tests := []struct {
		name string
		opts DiscoverOptions
		want []string
	}{
		{
			name: "directory lists regular files only",
			opts: DiscoverOptions{Directories: []string{root}},
			want: []string{b, a, notes},
		},
		{
			name: "strict keeps pdf extension",
			opts: DiscoverOptions{Directories: []string{root}, Strict: true},
			want: []string{b, a},
		},
		{
			name: "recursive descends",
			opts: DiscoverOptions{Directories: []string{root}, Strict: true, Recursive: true},
			want: []string{b, a, nested},
		},
		{
			name: "strict does not filter explicit files",
			opts: DiscoverOptions{Files: []string{explicit}, Strict: true},
			want: []string{explicit},
		},
		{
			name: "duplicates collapse",
			opts: DiscoverOptions{Files: []string{a, a}, Directories: []string{root}, Strict: true},
			want: []string{b, a},
		},
		{
			name: "missing and wrong kind entries are skipped",
			opts: DiscoverOptions{
				Files:       []string{filepath.Join(root, "missing.pdf"), root, a},
				Directories: []string{filepath.Join(root, "nope"), notes},
			},
			want: []string{a},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discover(tt.opts, zerolog.Nop())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscoverReturnsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "rel.pdf"))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got := Discover(DiscoverOptions{Files: []string{"rel.pdf"}}, zerolog.Nop())
	require.Len(t, got, 1)
	assert.True(t, filepath.IsAbs(got[0]))
	assert.Equal(t, "rel.pdf", filepath.Base(got[0]))
}

func TestHasPDFExtension(t *testing.T) {
	assert.True(t, HasPDFExtension("x.pdf"))
	assert.True(t, HasPDFExtension("/a/b/X.Pdf"))
	assert.False(t, HasPDFExtension("x.pdf.txt"))
	assert.False(t, HasPDFExtension("pdf"))
}
