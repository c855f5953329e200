package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestFiles_ListFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html":          "<html/>",
		"assets/logo.png":     "png",
		"assets/sub/font.ttf": "ttf",
		"b.js":                "js",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	files, err := NewFiles().ListFiles(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "assets", "logo.png"),
		filepath.Join(root, "assets", "sub", "font.ttf"),
		filepath.Join(root, "b.js"),
		filepath.Join(root, "index.html"),
	}, files)
}

func TestFiles_ListFiles_StableOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"z.png": "", "a.png": "", "m/x.png": ""})

	first, err := NewFiles().ListFiles(context.Background(), root)
	require.NoError(t, err)
	second, err := NewFiles().ListFiles(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFiles_ListFiles_Errors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"file.txt": "x"})

	_, err := NewFiles().ListFiles(context.Background(), filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewFiles().ListFiles(context.Background(), filepath.Join(root, "file.txt"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFiles().ListFiles(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFiles_Read(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"index.html": "<p>héllo</p>", "a.bin": "\x00\xff"})
	f := NewFiles()
	ctx := context.Background()

	text, err := f.ReadText(ctx, filepath.Join(root, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>héllo</p>", text)

	data, err := f.ReadBytes(ctx, filepath.Join(root, "a.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff}, data)

	_, err = f.ReadText(ctx, filepath.Join(root, "missing.html"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
