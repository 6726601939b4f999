package movegen

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	. "github.com/cricklet/chessrules/internal/bitboards"
	. "github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/davecgh/go-spew/spew"
	"github.com/dylhunn/dragontoothmg"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func pp(t any) string {
	return spew.Sdump(t)
}

func positionFromFen(t *testing.T, fen string) (BoardArray, Player) {
	board, err := ParsePlacement(fen)
	assert.True(t, IsNil(err), err)

	player := White
	if fields := strings.Fields(fen); len(fields) > 1 {
		player, err = PlayerFromString(fields[1])
		assert.True(t, IsNil(err), err)
	}
	return board, player
}

func movesForFen(t *testing.T, fen string) []Move {
	board, player := positionFromFen(t, fen)
	b := NewBitboards(board)
	assert.True(t, IsNil(b.Validate()))

	moves := []Move{}
	AppendPseudoMoves(&moves, &b, player)
	return moves
}

func moveStrings(moves []Move) []string {
	result := MapSlice(moves, func(m Move) string { return m.String() })
	sort.Strings(result)
	return result
}

func TestOpeningMoves(t *testing.T) {
	moves := movesForFen(t, StartingFen)
	assert.Equal(t, 20, len(moves), pp(moves))

	// pawns first, then knights
	for i := 0; i < 16; i++ {
		assert.Equal(t, Pawn, moves[i].PieceType)
	}
	for i := 16; i < 20; i++ {
		assert.Equal(t, Knight, moves[i].PieceType)
	}

	assert.Equal(t, []string{
		"a2a3", "a2a4", "b1a3", "b1c3", "b2b3", "b2b4", "c2c3", "c2c4", "d2d3", "d2d4",
		"e2e3", "e2e4", "f2f3", "f2f4", "g1f3", "g1h3", "g2g3", "g2g4", "h2h3", "h2h4",
	}, moveStrings(moves))

	black := movesForFen(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1")
	assert.Equal(t, 20, len(black))
	for _, move := range black {
		assert.True(t, FileRankFromIndex(move.StartIndex).Rank >= 6, move.String())
	}
}

func TestKnightOnEmptyBoard(t *testing.T) {
	for _, c := range []struct {
		index    int
		expected int
	}{
		{0, 2},
		{27, 8},
		{63, 2},
		{BoardIndexFromString("b1"), 3},
		{BoardIndexFromString("a4"), 4},
		{BoardIndexFromString("c3"), 8},
	} {
		board := BoardArray{}
		board[c.index] = NewPiece(White, Knight)
		b := NewBitboards(board)

		moves := []Move{}
		AppendPseudoMoves(&moves, &b, White)
		assert.Equal(t, c.expected, len(moves), StringFromBoardIndex(c.index))
	}
}

func TestKnightCaptures(t *testing.T) {
	moves := moveStrings(movesForFen(t, "4k3/8/8/8/8/2p5/3P4/1N2K3 w - - 0 1"))
	assert.Contains(t, moves, "b1c3")
	assert.Contains(t, moves, "b1a3")
	assert.NotContains(t, moves, "b1d2")
}

func TestPawnPushes(t *testing.T) {
	moves := moveStrings(movesForFen(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"))
	assert.Contains(t, moves, "e2e3")
	assert.Contains(t, moves, "e2e4")

	// blocked two squares ahead: single push only
	moves = moveStrings(movesForFen(t, "4k3/8/8/8/4p3/8/4P3/4K3 w - - 0 1"))
	assert.Contains(t, moves, "e2e3")
	assert.NotContains(t, moves, "e2e4")

	// blocked right in front: neither
	moves = moveStrings(movesForFen(t, "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1"))
	assert.NotContains(t, moves, "e2e3")
	assert.NotContains(t, moves, "e2e4")

	// off the starting rank there is no skip step
	moves = moveStrings(movesForFen(t, "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1"))
	assert.Contains(t, moves, "e3e4")
	assert.NotContains(t, moves, "e3e5")

	moves = moveStrings(movesForFen(t, "4k3/3p4/8/8/8/8/8/4K3 b - - 0 1"))
	assert.Contains(t, moves, "d7d6")
	assert.Contains(t, moves, "d7d5")
}

func TestPawnCapturesDoNotWrap(t *testing.T) {
	moves := moveStrings(movesForFen(t, "4k3/8/8/8/p7/6p1/7P/4K3 w - - 0 1"))
	assert.Contains(t, moves, "h2g3")
	assert.Contains(t, moves, "h2h3")
	assert.Contains(t, moves, "h2h4")
	assert.NotContains(t, moves, "h2a4")
	assert.Equal(t, 3, len(FilterSlice(moves, func(s string) bool { return strings.HasPrefix(s, "h2") })))

	moves = moveStrings(movesForFen(t, "4k3/p7/1P6/7P/8/8/8/4K3 b - - 0 1"))
	assert.Contains(t, moves, "a7b6")
	assert.NotContains(t, moves, "a7h5")

	// own pieces are never captured
	moves = moveStrings(movesForFen(t, "4k3/8/8/8/8/3N1B2/4P3/4K3 w - - 0 1"))
	assert.NotContains(t, moves, "e2d3")
	assert.NotContains(t, moves, "e2f3")
}

func TestPawnReachingLastRank(t *testing.T) {
	moves := movesForFen(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	pawnMoves := FilterSlice(moves, func(m Move) bool { return m.PieceType == Pawn })

	assert.Equal(t, 1, len(pawnMoves), pp(pawnMoves))
	assert.Equal(t, "a7a8", pawnMoves[0].String())
	assert.True(t, pawnMoves[0].NeedsPromotion)

	moves = movesForFen(t, "4k3/8/8/8/8/8/6p1/4K2R b - - 0 1")
	pawnMoves = FilterSlice(moves, func(m Move) bool { return m.PieceType == Pawn })
	assert.Equal(t, []string{"g2g1", "g2h1"}, moveStrings(pawnMoves))
	for _, move := range pawnMoves {
		assert.True(t, move.NeedsPromotion)
	}

	for _, move := range movesForFen(t, StartingFen) {
		assert.False(t, move.NeedsPromotion)
	}
}

func TestSlidersAndKings(t *testing.T) {
	moves := movesForFen(t, "4k3/8/8/8/3Q4/8/8/4K3 w - - 0 1")
	queenMoves := FilterSlice(moves, func(m Move) bool { return m.PieceType == Queen })
	kingMoves := FilterSlice(moves, func(m Move) bool { return m.PieceType == King })
	assert.Equal(t, 27, len(queenMoves))
	assert.Equal(t, 5, len(kingMoves))

	moves = movesForFen(t, "4k3/8/8/3p4/2pRp3/3P4/8/4K3 w - - 0 1")
	rookMoves := moveStrings(FilterSlice(moves, func(m Move) bool { return m.PieceType == Rook }))
	assert.Equal(t, []string{"d4c4", "d4d5", "d4e4"}, rookMoves)

	moves = movesForFen(t, "4k3/8/8/8/8/8/1P6/B3K3 w - - 0 1")
	bishopMoves := FilterSlice(moves, func(m Move) bool { return m.PieceType == Bishop })
	assert.Empty(t, bishopMoves)
}

func TestGenerationOrder(t *testing.T) {
	moves := movesForFen(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1")
	order := map[PieceType]int{Pawn: 0, Knight: 1, King: 2, Bishop: 3, Rook: 4, Queen: 5}

	last := 0
	for _, move := range moves {
		position := order[move.PieceType]
		assert.GreaterOrEqual(t, position, last, move.DebugString())
		last = position
	}
	assert.Equal(t, 5, last)
}

var crossCheckFens = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w - - 2 3",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
}

func referenceMoveStrings(fen string) []string {
	board := dragontoothmg.ParseFen(fen)
	result := []string{}
	seen := map[string]bool{}
	for _, m := range board.GenerateLegalMoves() {
		from, to := int(m.From()), int(m.To())
		// castling is out of scope
		if board.Wtomove && from == 4 && (to == 6 || to == 2) {
			continue
		}
		if !board.Wtomove && from == 60 && (to == 62 || to == 58) {
			continue
		}
		s := StringFromBoardIndex(from) + StringFromBoardIndex(to)
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	sort.Strings(result)
	return result
}

func TestLegalMovesAreGenerated(t *testing.T) {
	for _, fen := range crossCheckFens {
		moves := moveStrings(movesForFen(t, fen))
		for _, expected := range referenceMoveStrings(fen) {
			assert.Contains(t, moves, expected, fen)
		}
	}
}

func TestQuietPositionsMatchLegalMoves(t *testing.T) {
	for _, fen := range crossCheckFens[:2] {
		moves := moveStrings(movesForFen(t, fen))
		assert.Empty(t, cmp.Diff(referenceMoveStrings(fen), moves), fen)
	}
}

func TestTargetsAreEmptyOrEnemy(t *testing.T) {
	for _, fen := range crossCheckFens {
		board, player := positionFromFen(t, fen)
		for _, move := range movesForFen(t, fen) {
			mover := board[move.StartIndex]
			target := board[move.EndIndex]

			assert.Equal(t, player, mover.Player, move.String())
			assert.Equal(t, move.PieceType, mover.Type, move.String())
			assert.True(t, target.IsEmpty() || target.IsEnemyOf(mover), fmt.Sprint(fen, " ", move))
			assert.NotEqual(t, move.StartIndex, move.EndIndex)
		}
	}
}

func TestCountLeaves(t *testing.T) {
	board, player := positionFromFen(t, StartingFen)
	assert.Equal(t, 1, CountLeaves(board, player, 0))
	assert.Equal(t, 20, CountLeaves(board, player, 1))
	assert.Equal(t, 400, CountLeaves(board, player, 2))
	assert.Equal(t, 8902, CountLeaves(board, player, 3))

	perMove := CountLeavesPerMove(board, player, 2, nil)
	assert.Equal(t, 20, len(perMove))
	total := ReduceSlice(perMove, 0, func(sum int, c MoveCount) int { return sum + c.Leaves })
	assert.Equal(t, 400, total)

	// counting leaves the board untouched
	assert.Equal(t, InitialStateString, StateStringForBoard(board))
}
