package nuru

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/nuru/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteName(t *testing.T) {
	tests := map[string]string{
		"/tmp/Sunset.pal":       "sunset",
		"averylongname.pal":     "averylo",
		"my palette.pal":        "mypalet",
		"dir.d/x":               "x",
		filepath.Join("a", "b"): "b",
	}

	for file, want := range tests {
		assert.Equal(t, want, PaletteName(file), file)
	}
}

func TestPaletteFallback(t *testing.T) {
	n, _ := testNuru(t)

	p, err := n.Palette(palette.ANSI4)
	require.NoError(t, err)
	want, _ := palette.Builtin(palette.ANSI4)
	assert.Equal(t, want, p)

	// The library overrides a built-in palette of the same name
	other, _ := palette.Builtin(palette.ANSI8)
	_, err = n.Library().AddPalette(palette.ANSI4, 0, other)
	require.NoError(t, err)

	p, err = n.Palette(palette.ANSI4)
	require.NoError(t, err)
	assert.Equal(t, other, p)

	p, err = n.Palette("nothing")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPalettes(t *testing.T) {
	n, _ := testNuru(t)

	p, _ := palette.Builtin(palette.CP437)
	_, err := n.Library().AddPalette(palette.CP437, 0, p)
	require.NoError(t, err)
	_, err = n.Library().AddPalette("aaa", 0, p)
	require.NoError(t, err)

	entries, err := n.Palettes()
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
		switch e.Name {
		case "aaa", palette.CP437:
			assert.False(t, e.Builtin)
			assert.Equal(t, KindGlyph, e.Kind)
		default:
			assert.True(t, e.Builtin)
		}
	}
	assert.Equal(t, []string{"aaa", palette.CP437, palette.ANSI4, palette.ANSI8, palette.NuruStd}, names)
	assert.Equal(t, entries[0].UUID, entries[1].UUID)
}

func TestImportExportPalette(t *testing.T) {
	n, buf := testNuru(t)
	dir := t.TempDir()

	p, _ := palette.Builtin(palette.ANSI8)
	p.UserData = 0xcafe
	src := filepath.Join(dir, "Vivid.pal")
	require.NoError(t, writeFile(src, p))

	name, err := n.ImportPalette(src, "", 0)
	require.NoError(t, err)
	assert.Equal(t, "vivid", name)
	assert.Contains(t, buf.String(), `as "vivid"`)

	entries, err := n.Library().Palettes()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, KindColor, entries[0].Kind)

	name, err = n.ImportPalette(src, "alias", KindGlyph)
	require.NoError(t, err)
	assert.Equal(t, "alias", name)

	dst := filepath.Join(dir, "out.pal")
	require.NoError(t, n.ExportPalette("vivid", dst))

	want, err := os.ReadFile(src)
	require.NoError(t, err)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Built-in palettes can be exported too
	require.NoError(t, n.ExportPalette(palette.NuruStd, dst))

	err = n.ExportPalette("missing", dst)
	assert.True(t, errors.Is(err, errNotFound))
}

func TestImportPaletteInvalid(t *testing.T) {
	n, _ := testNuru(t)
	file := filepath.Join(t.TempDir(), "bad.pal")
	require.NoError(t, os.WriteFile(file, []byte("NURUPAL\x02"), 0644))

	_, err := n.ImportPalette(file, "", 0)
	assert.Error(t, err)

	_, err = n.ImportPalette(filepath.Join(t.TempDir(), "none.pal"), "", 0)
	assert.Error(t, err)
}

func TestDeletePalette(t *testing.T) {
	n, _ := testNuru(t)

	p, _ := palette.Builtin(palette.ANSI4)
	_, err := n.Library().AddPalette("gone", 0, p)
	require.NoError(t, err)

	require.NoError(t, n.DeletePalette("gone"))

	err = n.DeletePalette("gone")
	assert.True(t, errors.Is(err, errNotFound))
}
