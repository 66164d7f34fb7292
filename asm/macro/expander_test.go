package macro

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpand_Invocation(t *testing.T) {
	src := "mcro MAC\ninc r1\ndec r2\nendmcro\nMAC\nMAC\nstop\n"

	out, errs := Expand(strings.NewReader(src), "test.as")
	require.Empty(t, errs)

	want := "inc r1\ndec r2\ninc r1\ndec r2\nstop\n"
	require.Equal(t, want, out)
}

func TestExpand_DefinitionElided(t *testing.T) {
	src := "mcro MAC\ninc r1\nendmcro\nstop\n"

	out, errs := Expand(strings.NewReader(src), "test.as")
	require.Empty(t, errs)
	require.NotContains(t, out, "mcro")
	require.NotContains(t, out, "endmcro")
}

func TestExpand_Redefinition(t *testing.T) {
	src := "mcro MAC\ninc r1\nendmcro\nmcro MAC\n"

	_, errs := Expand(strings.NewReader(src), "test.as")
	require.Len(t, errs, 1)
}

func TestExpand_UnterminatedAtEOF(t *testing.T) {
	src := "mcro MAC\ninc r1\n"

	_, errs := Expand(strings.NewReader(src), "test.as")
	require.Len(t, errs, 1)
}

func TestExpand_EndmcroOutsideDefinition(t *testing.T) {
	_, errs := Expand(strings.NewReader("endmcro\n"), "test.as")
	require.Len(t, errs, 1)
}

func TestExpand_NestedDefinitionRejected(t *testing.T) {
	src := "mcro A\nmcro B\nendmcro\nendmcro\n"
	_, errs := Expand(strings.NewReader(src), "test.as")
	require.NotEmpty(t, errs)
}

func TestExpand_ReservedName(t *testing.T) {
	src := "mcro mov\n"
	_, errs := Expand(strings.NewReader(src), "test.as")
	require.Len(t, errs, 1)
}

func TestExpand_CommentsPassThrough(t *testing.T) {
	src := "; a comment\nstop\n"
	out, errs := Expand(strings.NewReader(src), "test.as")
	require.Empty(t, errs)
	require.Equal(t, src, out)
}

func TestExpand_ContinuesPastEarlyErrorToReportLaterOnes(t *testing.T) {
	// A malformed "mcro" header early on, then an unrelated "endmcro"
	// stray later in the same file: both must be reported, proving the
	// expander doesn't abort scanning at the first error.
	src := "mcro\nstop\nendmcro\n"

	_, errs := Expand(strings.NewReader(src), "test.as")
	require.Len(t, errs, 2)
	require.Equal(t, 1, errs[0].(*Error).Line())
	require.Equal(t, 3, errs[1].(*Error).Line())
}

func TestExpand_RedefinitionDoesNotAbortRestOfFile(t *testing.T) {
	// MAC is redefined (an error), but scanning must still reach and
	// emit the unrelated line that follows, rather than stopping dead.
	src := "mcro MAC\ninc r1\nendmcro\nmcro MAC\nendmcro\nSTOP\n"

	out, errs := Expand(strings.NewReader(src), "test.as")
	require.NotEmpty(t, errs)
	require.Contains(t, out, "STOP")
}
