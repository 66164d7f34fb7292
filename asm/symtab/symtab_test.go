package symtab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdd_Basic(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Add("LOOP", 107, Code))

	sym, ok := tab.Find("LOOP")
	require.True(t, ok)
	require.Equal(t, 107, sym.Value)
	require.Equal(t, Code, sym.Attrs)
}

func TestAdd_DuplicateIsError(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Add("X", 100, Code))
	require.Error(t, tab.Add("X", 200, Data))
}

func TestAdd_ExternReinsertionIsNoop(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Add("FOO", 0, External))
	require.NoError(t, tab.Add("FOO", 0, External))

	sym, _ := tab.Find("FOO")
	require.Equal(t, External, sym.Attrs)
}

func TestAddAttrs_Entry(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Add("MAIN", 100, Code))
	require.NoError(t, tab.AddAttrs("MAIN", Entry))

	sym, _ := tab.Find("MAIN")
	require.Equal(t, Code|Entry, sym.Attrs)
}

func TestAddAttrs_UndefinedIsError(t *testing.T) {
	tab := New()
	require.Error(t, tab.AddAttrs("MISSING", Entry))
}

func TestAddAttrs_ExternalIsError(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Add("FOO", 0, External))
	require.Error(t, tab.AddAttrs("FOO", Entry))
}

func TestAddAttrs_RepeatedEntryIsIdempotent(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Add("MAIN", 100, Code))
	require.NoError(t, tab.AddAttrs("MAIN", Entry))
	require.NoError(t, tab.AddAttrs("MAIN", Entry))

	sym, _ := tab.Find("MAIN")
	require.Equal(t, Code|Entry, sym.Attrs)
}

func TestBulkRelocateData(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Add("X", 100, Data))
	require.NoError(t, tab.Add("Y", 105, Code))

	tab.BulkRelocateData(50)

	x, _ := tab.Find("X")
	y, _ := tab.Find("Y")
	require.Equal(t, 150, x.Value)
	require.Equal(t, 105, y.Value)
}

func TestEntries_DiscoveryOrder(t *testing.T) {
	tab := New()
	require.NoError(t, tab.Add("B", 1, Code))
	require.NoError(t, tab.Add("A", 2, Code))
	require.NoError(t, tab.AddAttrs("B", Entry))
	require.NoError(t, tab.AddAttrs("A", Entry))

	names := make([]string, 0)
	for _, s := range tab.Entries() {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{"B", "A"}, names)
}
