package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twopass/asm24/arch"
	"github.com/twopass/asm24/asm/secondpass"
	"github.com/twopass/asm24/asm/symtab"
)

func TestWriteObject_HeaderAndWords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unit.ob")

	res := &secondpass.Result{
		Code: map[int]arch.Word{100: arch.NewPayloadWord(7, arch.Absolute)},
		Data: map[int]arch.Word{101: arch.NewPayloadWord(-2, arch.Relocatable)},
	}

	require.NoError(t, WriteObject(path, res, 100, 1, 1))

	got, err := os.ReadFile(path)
	require.NoError(t, err)

	b0 := arch.NewPayloadWord(7, arch.Absolute).Bytes()
	b1 := arch.NewPayloadWord(-2, arch.Relocatable).Bytes()
	want := "1 1\n" +
		"0100 " + b64(b0) + "\n" +
		"0101 " + b64(b1) + "\n"
	require.Equal(t, want, string(got))
}

func TestWriteEntries_OmittedWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unit.ent")

	require.NoError(t, WriteEntries(path, symtab.New()))

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestWriteEntries_DiscoveryOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unit.ent")

	tab := symtab.New()
	require.NoError(t, tab.Add("B", 101, symtab.Code))
	require.NoError(t, tab.Add("A", 150, symtab.Data))
	require.NoError(t, tab.AddAttrs("B", symtab.Entry))
	require.NoError(t, tab.AddAttrs("A", symtab.Entry))

	require.NoError(t, WriteEntries(path, tab))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "B 0101\nA 0150\n", string(got))
}

func TestWriteExterns_OmittedWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unit.ext")

	require.NoError(t, WriteExterns(path, nil))

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestWriteExterns_InsertionOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unit.ext")

	refs := []secondpass.ExternRef{
		{Name: "TARGET", Address: 102},
		{Name: "TARGET", Address: 107},
	}
	require.NoError(t, WriteExterns(path, refs))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "TARGET 0102\nTARGET 0107\n", string(got))
}

func b64(b [3]byte) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	v := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	out := make([]byte, 4)
	out[0] = alphabet[(v>>18)&0x3F]
	out[1] = alphabet[(v>>12)&0x3F]
	out[2] = alphabet[(v>>6)&0x3F]
	out[3] = alphabet[v&0x3F]
	return string(out)
}
