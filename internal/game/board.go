package game

import (
	. "github.com/cricklet/chessrules/internal/helpers"
)

// PerformMove moves whatever stands on startIndex to endIndex and returns the piece it
// replaced. It does not check that the move is allowed.
func PerformMove(b *BoardArray, startIndex int, endIndex int) Piece {
	MustBeIndex(startIndex)
	MustBeIndex(endIndex)

	captured := b[endIndex]
	b[endIndex] = b[startIndex]
	b[startIndex] = NoPiece
	return captured
}

// UndoMove reverses PerformMove given the piece it returned.
func UndoMove(b *BoardArray, startIndex int, endIndex int, captured Piece) {
	MustBeIndex(startIndex)
	MustBeIndex(endIndex)

	b[startIndex] = b[endIndex]
	b[endIndex] = captured
}
