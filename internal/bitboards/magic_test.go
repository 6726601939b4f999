package bitboards

import (
	"math/rand"
	"testing"

	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
)

func randomOccupancy(r *rand.Rand) Bitboard {
	// roughly a quarter of the board occupied
	return Bitboard(r.Uint64() & r.Uint64())
}

func TestMagicTablesMatchRayWalk(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 64; i++ {
		for n := 0; n < 64; n++ {
			occupied := randomOccupancy(r)
			assert.Equal(t, WalkAttacks(i, occupied, RookDirs), RookAttacks(i, occupied))
			assert.Equal(t, WalkAttacks(i, occupied, BishopDirs), BishopAttacks(i, occupied))
			assert.Equal(t, WalkAttacks(i, occupied, KingDirs), QueenAttacks(i, occupied))
		}
	}
}

func TestMagicTablesMatchReference(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 64; i++ {
		for n := 0; n < 32; n++ {
			occupied := randomOccupancy(r)
			assert.Equal(t,
				Bitboard(dragontoothmg.CalculateRookMoveBitboard(uint8(i), uint64(occupied))),
				RookAttacks(i, occupied), StringFromBoardIndex(i))
			assert.Equal(t,
				Bitboard(dragontoothmg.CalculateBishopMoveBitboard(uint8(i), uint64(occupied))),
				BishopAttacks(i, occupied), StringFromBoardIndex(i))
		}
	}
}

func TestSliderAttacks(t *testing.T) {
	d4 := BoardIndexFromString("d4")

	assert.Equal(t, 14, OnesCount(RookAttacks(d4, 0)))
	assert.Equal(t, 13, OnesCount(BishopAttacks(d4, 0)))
	assert.Equal(t, 27, OnesCount(QueenAttacks(d4, 0)))
	assert.Equal(t, 14, OnesCount(RookAttacks(0, 0)))
	assert.Equal(t, 7, OnesCount(BishopAttacks(0, 0)))

	// blockers are included, squares behind them are not
	blockers := BitboardWithAllLocationsSet([]string{"d6", "f4", "b2"})
	rook := RookAttacks(d4, blockers)
	assert.True(t, rook.IsSet(BoardIndexFromString("d6")))
	assert.False(t, rook.IsSet(BoardIndexFromString("d7")))
	assert.True(t, rook.IsSet(BoardIndexFromString("f4")))
	assert.False(t, rook.IsSet(BoardIndexFromString("g4")))
	assert.True(t, rook.IsSet(BoardIndexFromString("a4")))
	assert.True(t, rook.IsSet(BoardIndexFromString("d1")))

	bishop := BishopAttacks(d4, blockers)
	assert.True(t, bishop.IsSet(BoardIndexFromString("b2")))
	assert.False(t, bishop.IsSet(BoardIndexFromString("a1")))
	assert.True(t, bishop.IsSet(BoardIndexFromString("h8")))
}

func TestBlockerMasksSkipEdges(t *testing.T) {
	assert.Equal(t, 12, OnesCount(RookMagicTable.BlockerMasks[0]))
	assert.Equal(t, 10, OnesCount(RookMagicTable.BlockerMasks[BoardIndexFromString("d4")]))
	assert.Equal(t, 6, OnesCount(BishopMagicTable.BlockerMasks[0]))
	assert.Equal(t, 9, OnesCount(BishopMagicTable.BlockerMasks[BoardIndexFromString("d4")]))
	assert.Equal(t,
		BitboardWithAllLocationsSet([]string{"a2", "a3", "a4", "a5", "a6", "a7", "b1", "c1", "d1", "e1", "f1", "g1"}),
		RookMagicTable.BlockerMasks[0])
}
