package notation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEPDBasic(t *testing.T) {
	epd, err := ParseEPD(`rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - id "starting.2";`)
	require.NoError(t, err)
	require.Equal(t, "starting.2", epd.ID)
	require.Empty(t, epd.BestMove)
}

func TestParseEPDBestMove(t *testing.T) {
	// Back-rank mate in one: the rook on d1 mates on d8.
	epd, err := ParseEPD(`6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - bm Rd8#; id "mate.1";`)
	require.NoError(t, err)
	require.Equal(t, "mate.1", epd.ID)
	require.Len(t, epd.BestMove, 1)
	require.Equal(t, "d1d8", epd.BestMove[0].UCI())
}

func TestParseEPDAvoidMoveAndComment(t *testing.T) {
	epd, err := ParseEPD(`rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - am Nh3; c0 "opening theory"; fmvn 5; hmvc 2;`)
	require.NoError(t, err)
	require.Len(t, epd.AvoidMove, 1)
	require.Equal(t, "g1h3", epd.AvoidMove[0].UCI())
	require.Equal(t, "opening theory", epd.Comment["c0"])
	require.Equal(t, 5, epd.Position.FullMoveNumber)
	require.Equal(t, 2, epd.Position.HalfMoveClock)
}

func TestParseEPDCastling(t *testing.T) {
	epd, err := ParseEPD(`r3k2r/8/8/8/8/8/8/R3K2R w KQkq - bm O-O;`)
	require.NoError(t, err)
	require.Len(t, epd.BestMove, 1)
	require.Equal(t, "e1g1", epd.BestMove[0].UCI())
}

func TestParseEPDRejectsMalformed(t *testing.T) {
	_, err := ParseEPD("not an epd line")
	require.Error(t, err)
}

func TestParseEPDRejectsUnknownBestMove(t *testing.T) {
	_, err := ParseEPD(`8/8/8/8/8/8/8/K6k w - - bm Qh8;`)
	require.Error(t, err)
}

func TestEPDStringRoundTrips(t *testing.T) {
	epd, err := ParseEPD(`6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - bm Rd8#; id "mate.1";`)
	require.NoError(t, err)

	s := epd.String()
	require.Contains(t, s, "bm d1d8;")
	require.Contains(t, s, `id "mate.1";`)
}
