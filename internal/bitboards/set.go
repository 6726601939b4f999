package bitboards

import (
	. "github.com/cricklet/chessrules/internal/helpers"
)

type PlayerBitboards struct {
	Occupied Bitboard
	Pieces   [NumPieceTypes]Bitboard // indexed via PieceType, Pieces[NoPieceType] stays empty
}

// Bitboards is the sixteen-mask view of a board: six per player, one aggregate per
// player, the overall occupancy and its complement.
type Bitboards struct {
	Occupied Bitboard
	Empty    Bitboard
	Players  [2]PlayerBitboards
}

func NewBitboards(board BoardArray) Bitboards {
	result := Bitboards{}
	for i, piece := range board {
		if piece.IsEmpty() {
			continue
		}
		result.SetSquare(i, piece)
	}
	result.Empty = ^result.Occupied
	return result
}

func (b *Bitboards) SetSquare(index int, piece Piece) {
	oneBitboard := SingleBitboard(index)

	b.Occupied |= oneBitboard
	b.Empty &= ^oneBitboard
	b.Players[piece.Player].Occupied |= oneBitboard
	b.Players[piece.Player].Pieces[piece.Type] |= oneBitboard
}

func (b *Bitboards) ClearSquare(index int, piece Piece) Error {
	if !piece.Type.IsValid() {
		return Errorf("clearing %v: piece %v is not valid", StringFromBoardIndex(index), piece)
	}
	oneBitboard := SingleBitboard(index)
	if b.Players[piece.Player].Pieces[piece.Type]&oneBitboard == 0 {
		return Errorf("clearing %v: %v is not there", StringFromBoardIndex(index), piece)
	}
	zeroBitboard := ^oneBitboard

	b.Occupied &= zeroBitboard
	b.Empty |= oneBitboard
	b.Players[piece.Player].Occupied &= zeroBitboard
	b.Players[piece.Player].Pieces[piece.Type] &= zeroBitboard

	return NilError
}

func (b *Bitboards) PieceAt(index int) Piece {
	square := SingleBitboard(index)
	if b.Occupied&square == 0 {
		return NoPiece
	}
	for _, player := range []Player{White, Black} {
		if b.Players[player].Occupied&square == 0 {
			continue
		}
		for _, pieceType := range AllPieceTypes {
			if b.Players[player].Pieces[pieceType]&square != 0 {
				return NewPiece(player, pieceType)
			}
		}
	}
	return NoPiece
}

// Validate checks that the twelve piece boards partition the occupied squares and that the
// aggregates agree with them.
func (b *Bitboards) Validate() Error {
	seen := Bitboard(0)
	for _, player := range []Player{White, Black} {
		playerSeen := Bitboard(0)
		for _, pieceType := range AllPieceTypes {
			pieces := b.Players[player].Pieces[pieceType]
			if overlap := seen & pieces; overlap != 0 {
				return Errorf("%v %v overlaps another piece board:\n%v", player, pieceType, overlap)
			}
			seen |= pieces
			playerSeen |= pieces
		}
		if b.Players[player].Pieces[NoPieceType] != 0 {
			return Errorf("%v has squares without a piece type", player)
		}
		if playerSeen != b.Players[player].Occupied {
			return Errorf("%v occupancy disagrees with its pieces", player)
		}
	}
	if seen != b.Occupied {
		return Errorf("occupancy disagrees with the piece boards")
	}
	if b.Empty != ^b.Occupied {
		return Errorf("empty squares are not the complement of occupancy")
	}
	return NilError
}
