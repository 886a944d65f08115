package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoaderReadsUTF8WithBOM(t *testing.T) {
	path := writeFile(t, "profile.csv", []byte("\xEF\xBB\xBFprovince;gender\nAceh;Perempuan\nBali;Laki-laki\n"))

	tbl, err := NewLoader(newTestLogger()).Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"province", "gender"}, tbl.Headers)
	assert.Equal(t, [][]string{{"Aceh", "Perempuan"}, {"Bali", "Laki-laki"}}, tbl.Rows)
	assert.Equal(t, path, tbl.Path)
}

func TestLoaderFallsBackToLatin1(t *testing.T) {
	path := writeFile(t, "regional.csv", []byte("provinsi;catatan\nBali;caf\xe9\n"))

	tbl, err := NewLoader(newTestLogger()).Load(path)

	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "café", tbl.Rows[0][1])
}

func TestLoaderSkipsBlankRowsAndKeepsShortRows(t *testing.T) {
	path := writeFile(t, "data.csv", []byte("a;b;c\n;;\n1;2;3\n\n4\n"))

	tbl, err := NewLoader(newTestLogger()).Load(path)

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4"}}, tbl.Rows)
}

func TestLoaderMemoizesByPath(t *testing.T) {
	path := writeFile(t, "data.csv", []byte("a;b\n1;2\n"))
	l := NewLoader(newTestLogger())

	first, err := l.Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("a;b\n3;4\n5;6\n"), 0644))
	second, err := l.Load(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, second.Rows, 1)
}

func TestLoaderErrors(t *testing.T) {
	l := NewLoader(newTestLogger())

	t.Run("missing file", func(t *testing.T) {
		_, err := l.Load(filepath.Join(t.TempDir(), "nope.csv"))
		assert.ErrorIs(t, err, ErrLoad)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := l.Load(writeFile(t, "empty.csv", nil))
		assert.ErrorIs(t, err, ErrLoad)
		assert.ErrorIs(t, err, ErrEmptyTable)
	})

	t.Run("wrong delimiter", func(t *testing.T) {
		_, err := l.Load(writeFile(t, "comma.csv", []byte("a,b,c\n1,2,3\n")))
		assert.ErrorIs(t, err, ErrLoad)
		assert.ErrorIs(t, err, ErrDelimiter)
	})
}

func TestLoadAllStopsOnFirstFailure(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "profile.csv")
	literacy := filepath.Join(dir, "literacy.csv")
	require.NoError(t, os.WriteFile(profile, []byte("province;gender\nAceh;Perempuan\n"), 0644))
	require.NoError(t, os.WriteFile(literacy, []byte("Province of Origin;Year of Birth\nAceh;2003\n"), 0644))

	_, err := NewLoader(newTestLogger()).LoadAll(SourcePaths{
		Profile:  profile,
		Literacy: literacy,
		Regional: filepath.Join(dir, "regional.csv"),
	})

	assert.ErrorIs(t, err, ErrLoad)
}
