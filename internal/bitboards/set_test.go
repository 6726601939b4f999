package bitboards

import (
	"testing"

	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/stretchr/testify/assert"
)

// boardFromRanks reads rank 8 first, '.' for an empty square.
func boardFromRanks(ranks [8]string) BoardArray {
	n := NaturalBoardArray{}
	for r, line := range ranks {
		for f, c := range line {
			if c == '.' {
				continue
			}
			p, err := PieceFromRune(c)
			if !IsNil(err) {
				panic(err)
			}
			n[r*8+f] = p
		}
	}
	return n.AsBoardArray()
}

var startingBoard = boardFromRanks([8]string{
	"rnbqkbnr",
	"pppppppp",
	"........",
	"........",
	"........",
	"........",
	"PPPPPPPP",
	"RNBQKBNR",
})

func TestNewBitboards(t *testing.T) {
	b := NewBitboards(startingBoard)
	assert.True(t, IsNil(b.Validate()))

	assert.Equal(t, 32, OnesCount(b.Occupied))
	assert.Equal(t, 32, OnesCount(b.Empty))
	assert.Equal(t, 16, OnesCount(b.Players[White].Occupied))
	assert.Equal(t, 16, OnesCount(b.Players[Black].Occupied))
	assert.Equal(t, Bitboard(0xFF00), b.Players[White].Pieces[Pawn])
	assert.Equal(t, Bitboard(0x00FF000000000000), b.Players[Black].Pieces[Pawn])
	assert.Equal(t, SingleBitboard(BoardIndexFromString("e1")), b.Players[White].Pieces[King])
	assert.Equal(t, SingleBitboard(BoardIndexFromString("d8")), b.Players[Black].Pieces[Queen])
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"b1", "g1"}), b.Players[White].Pieces[Knight])

	for i, piece := range startingBoard {
		assert.Equal(t, piece, b.PieceAt(i), StringFromBoardIndex(i))
	}
}

func TestSetAndClearSquare(t *testing.T) {
	b := NewBitboards(startingBoard)
	e2 := BoardIndexFromString("e2")
	e4 := BoardIndexFromString("e4")
	pawn := NewPiece(White, Pawn)

	assert.True(t, IsNil(b.ClearSquare(e2, pawn)))
	b.SetSquare(e4, pawn)
	assert.True(t, IsNil(b.Validate()))
	assert.Equal(t, pawn, b.PieceAt(e4))
	assert.Equal(t, NoPiece, b.PieceAt(e2))
	assert.True(t, b.Empty.IsSet(e2))
	assert.False(t, b.Empty.IsSet(e4))

	assert.False(t, IsNil(b.ClearSquare(e2, pawn)))
	assert.False(t, IsNil(b.ClearSquare(e4, NoPiece)))
}

func TestValidateCatchesOverlap(t *testing.T) {
	b := NewBitboards(startingBoard)
	b.Players[White].Pieces[Queen] |= SingleBitboard(BoardIndexFromString("a1"))
	assert.False(t, IsNil(b.Validate()))

	b = NewBitboards(startingBoard)
	b.Empty = 0
	assert.False(t, IsNil(b.Validate()))
}
