package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/book-expert/nsw-normalizer/internal/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCacheDir_WithOverride(t *testing.T) {
	expectedPath := "/custom/cache/dir"
	t.Setenv("CACHE_DIR", expectedPath)

	assert.Equal(t, expectedPath, fsutil.GetCacheDir())
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	testPath := filepath.Join(t.TempDir(), "new", "dir")

	require.NoError(t, fsutil.EnsureDir(testPath))
	require.NoError(t, fsutil.EnsureDir(testPath), "existing directories are accepted")

	info, err := os.Stat(testPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGetDictionaryPath(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("CACHE_DIR", cacheDir)

	dictDir := filepath.Join(cacheDir, "dict")
	require.NoError(t, os.MkdirAll(dictDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dictDir, "cached.dict"), []byte("a AH0\n"), 0o600))

	direct := filepath.Join(t.TempDir(), "direct.dict")
	require.NoError(t, os.WriteFile(direct, []byte("a AH0\n"), 0o600))

	path, err := fsutil.GetDictionaryPath(direct)
	require.NoError(t, err)
	assert.Equal(t, direct, path)

	path, err = fsutil.GetDictionaryPath("cached.dict")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dictDir, "cached.dict"), path)

	_, err = fsutil.GetDictionaryPath("missing.dict")
	require.ErrorIs(t, err, fsutil.ErrDictionaryNotFound)
}

func TestIsValidTextFile(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"chapter.txt":  true,
		"README.md":    true,
		"NOTES.TXT":    true,
		"audio.wav":    false,
		"no_extension": false,
	}

	for name, want := range tests {
		assert.Equal(t, want, fsutil.IsValidTextFile(name), name)
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a_b_c_d", fsutil.SanitizeFilename("a<b>c:d"))
	assert.Equal(t, "plain", fsutil.SanitizeFilename("plain"))
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("out", "ch1_norm.txt"), fsutil.OutputPath("out", "notes/ch1.txt", "_norm"))
	assert.Equal(t, filepath.Join("out", "a_b_pron.txt"), fsutil.OutputPath("out", "a:b.md", "_pron"))
}
