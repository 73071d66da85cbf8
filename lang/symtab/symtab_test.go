package symtab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPredefinedSymbols(t *testing.T) {
	tab := New()
	cases := map[string]uint16{
		"SP": 0, "LCL": 1, "ARG": 2, "THIS": 3, "THAT": 4,
		"SCREEN": 16384, "KBD": 24576,
		"R0": 0, "R5": 5, "R15": 15,
	}
	for sym, want := range cases {
		got, ok := tab.Get(sym)
		require.True(t, ok, sym)
		require.Equal(t, want, got, sym)
	}
}

func TestUnknownSymbolNotFound(t *testing.T) {
	tab := New()
	_, ok := tab.Get("LOOP")
	require.False(t, ok)
}

func TestInsertOverwrites(t *testing.T) {
	tab := New()
	tab.Insert("LOOP", 42)
	got, ok := tab.Get("LOOP")
	require.True(t, ok)
	require.Equal(t, uint16(42), got)
}

func TestAppendAllocatesStartingAt16(t *testing.T) {
	tab := New()
	require.Equal(t, uint16(16), tab.Append("i"))
	require.Equal(t, uint16(17), tab.Append("j"))
	require.Equal(t, uint16(16), tab.Append("i"), "re-appending the same symbol must be idempotent")
}

func TestAppendDoesNotReallocateKnownSymbol(t *testing.T) {
	tab := New()
	tab.Insert("LOOP", 100)
	require.Equal(t, uint16(100), tab.Append("LOOP"))
	require.Equal(t, uint16(16), tab.Append("i"))
}
