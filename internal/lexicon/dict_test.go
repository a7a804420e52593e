package lexicon_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/book-expert/nsw-normalizer/internal/lexicon"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDictionary = `;;; comment in the cmudict-0.7b style
# comment in the cmudict.dict style
HELLO  HH AH0 L OW1
world W ER1 L D
read R IY1 D
read(2) R EH1 D
d'artagnan D AH0 R T AE1 NG Y AH0 N # foreign french
`

func TestLoad(t *testing.T) {
	t.Parallel()

	dictionary, err := lexicon.Load(strings.NewReader(testDictionary))
	require.NoError(t, err)

	assert.Equal(t, 4, dictionary.Len())

	phonemes, found := dictionary.Lookup("hello")
	require.True(t, found, "upper-case headwords are folded to lower case")
	assert.Equal(t, "HH AH0 L OW1", phonemes)

	phonemes, found = dictionary.Lookup("read")
	require.True(t, found)
	assert.Equal(t, "R IY1 D", phonemes, "the first variant wins")

	phonemes, found = dictionary.Lookup("d'artagnan")
	require.True(t, found)
	assert.Equal(t, "D AH0 R T AE1 NG Y AH0 N", phonemes, "inline comments are dropped")

	assert.False(t, dictionary.Contains("HELLO"), "lookups expect lower-case keys")
	assert.True(t, dictionary.Contains("d'artagnan"))
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := lexicon.Load(strings.NewReader("hello\n"))
	require.ErrorIs(t, err, lexicon.ErrMalformedEntry)

	_, err = lexicon.Load(strings.NewReader(";;; nothing here\n\n"))
	require.ErrorIs(t, err, lexicon.ErrEmptyDictionary)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.dict")
	require.NoError(t, os.WriteFile(path, []byte(testDictionary), 0o600))

	dictionary, err := lexicon.LoadFile(path)
	require.NoError(t, err)
	assert.True(t, dictionary.Contains("world"))
}

func TestLoadFile_Zstd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.dict.zst")

	f, err := os.Create(path)
	require.NoError(t, err)

	encoder, err := zstd.NewWriter(f)
	require.NoError(t, err)

	_, err = encoder.Write([]byte(testDictionary))
	require.NoError(t, err)
	require.NoError(t, encoder.Close())
	require.NoError(t, f.Close())

	dictionary, err := lexicon.LoadFile(path)
	require.NoError(t, err)

	phonemes, found := dictionary.Lookup("world")
	require.True(t, found)
	assert.Equal(t, "W ER1 L D", phonemes)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := lexicon.LoadFile(filepath.Join(t.TempDir(), "missing.dict"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	dictionary := lexicon.Default()

	assert.True(t, dictionary.Contains("hello"))
	assert.True(t, dictionary.Contains("mail"))
	assert.False(t, dictionary.Contains("nasa"))

	phonemes, found := dictionary.Lookup("a")
	require.True(t, found)
	assert.Equal(t, "AH0", phonemes)
}
