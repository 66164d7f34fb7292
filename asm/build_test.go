package asm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuild_Success(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "unit")

	src := "MAIN: mov #5, r1\n" +
		"jmp EXT\n" +
		".extern EXT\n" +
		".entry MAIN\n" +
		"stop\n"
	require.NoError(t, os.WriteFile(base+".as", []byte(src), 0644))

	errs := Build(base, Options{})
	require.Empty(t, errs)

	for _, ext := range []string{".am", ".ob", ".ent", ".ext"} {
		_, err := os.Stat(base + ext)
		require.NoErrorf(t, err, "expected %s to exist", ext)
	}
}

func TestBuild_StopsAtFirstFailingStage(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "unit")

	require.NoError(t, os.WriteFile(base+".as", []byte("mov #1, MISSING\n"), 0644))

	errs := Build(base, Options{})
	require.NotEmpty(t, errs)

	_, err := os.Stat(base + ".ob")
	require.True(t, os.IsNotExist(err))
}

func TestBuild_MissingSourceIsError(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "missing")

	errs := Build(base, Options{})
	require.Len(t, errs, 1)
}

func TestBuild_OutDirRelocatesArtifacts(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	base := filepath.Join(srcDir, "unit")

	require.NoError(t, os.WriteFile(base+".as", []byte("stop\n"), 0644))

	errs := Build(base, Options{OutDir: outDir})
	require.Empty(t, errs)

	_, err := os.Stat(filepath.Join(outDir, "unit.ob"))
	require.NoError(t, err)
	_, err = os.Stat(base + ".ob")
	require.True(t, os.IsNotExist(err))
}

func TestBuild_CustomBaseShiftsAddresses(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "unit")

	require.NoError(t, os.WriteFile(base+".as", []byte("stop\n"), 0644))

	errs := Build(base, Options{Base: 200})
	require.Empty(t, errs)

	contents, err := os.ReadFile(base + ".ob")
	require.NoError(t, err)
	require.Contains(t, string(contents), "0200 ")
}
