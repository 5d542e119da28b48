package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSANBasic(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	require.NoError(t, err)

	for san, want := range map[string]string{
		"e4":  "e2e4",
		"Nf3": "g1f3",
		"a3":  "a2a3",
	} {
		m, err := ParseSAN(pos, san)
		require.NoError(t, err, san)
		require.Equal(t, want, m.UCI(), san)
	}
}

func TestParseSANCapture(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	require.NoError(t, err)

	m, err := ParseSAN(pos, "exd5")
	require.NoError(t, err)
	require.Equal(t, "e4d5", m.UCI())
	require.Equal(t, Capture, m.Flag())
}

func TestParseSANDisambiguation(t *testing.T) {
	// Two rooks can reach b1; the file letter picks one.
	pos, err := ParseFEN("4k3/8/8/8/8/8/4K3/R6R w - - 0 1")
	require.NoError(t, err)

	_, err = ParseSAN(pos, "Rd... nonsense")
	require.Error(t, err)

	// Both rooks reach b1: "Rb1" alone is ambiguous.
	_, err = ParseSAN(pos, "Rb1")
	require.Error(t, err)

	m, err := ParseSAN(pos, "Rab1")
	require.NoError(t, err)
	require.Equal(t, "a1b1", m.UCI())

	m, err = ParseSAN(pos, "Rhb1")
	require.NoError(t, err)
	require.Equal(t, "h1b1", m.UCI())
}

func TestParseSANCastles(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	m, err := ParseSAN(pos, "O-O")
	require.NoError(t, err)
	require.Equal(t, "e1g1", m.UCI())

	m, err = ParseSAN(pos, "O-O-O")
	require.NoError(t, err)
	require.Equal(t, "e1c1", m.UCI())
}

func TestParseSANPromotion(t *testing.T) {
	pos, err := ParseFEN("1n6/P7/8/8/8/8/8/k6K w - - 0 1")
	require.NoError(t, err)

	m, err := ParseSAN(pos, "a8=Q+")
	require.NoError(t, err)
	require.Equal(t, "a7a8q", m.UCI())

	m, err = ParseSAN(pos, "axb8=N")
	require.NoError(t, err)
	require.Equal(t, "a7b8n", m.UCI())

	// Promotion moves require the "=" suffix; the bare pawn push is a
	// different (nonexistent) move.
	_, err = ParseSAN(pos, "a8")
	require.Error(t, err)
}

func TestParseSANRejectsIllegal(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	require.NoError(t, err)

	for _, san := range []string{"", "Qh5", "Ke2", "xx", "O-O"} {
		_, err := ParseSAN(pos, san)
		require.Error(t, err, san)
	}
}
