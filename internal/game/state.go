package game

import (
	"errors"
	"strings"

	. "github.com/cricklet/chessrules/internal/helpers"
)

var ErrInvalidStateString = errors.New("invalid state string")

const StateStringLength = 64

// InitialStateString is the standard opening, rank-major from a1.
var InitialStateString = "RNBQKBNR" + "PPPPPPPP" + strings.Repeat("0", 32) + "pppppppp" + "rnbqkbnr"

// StateStringForBoard writes one notation character per square, a1 first, then b1 and so on
// up to h8.
func StateStringForBoard(b BoardArray) string {
	result := [StateStringLength]byte{}
	for i, piece := range b {
		result[i] = piece.Notation()
	}
	return string(result[:])
}

func ValidateStateString(s string) Error {
	if len(s) != StateStringLength {
		return Errorf("%w: expected %v characters, found %v", ErrInvalidStateString, StateStringLength, len(s))
	}
	for i := 0; i < len(s); i++ {
		if _, err := PieceFromNotation(s[i]); !IsNil(err) {
			return Errorf("%w: '%c' at %v", ErrInvalidStateString, s[i], StringFromBoardIndex(i))
		}
	}
	return NilError
}

// BoardFromStateString validates the whole string before building anything.
func BoardFromStateString(s string) (BoardArray, Error) {
	if err := ValidateStateString(s); !IsNil(err) {
		return BoardArray{}, err
	}

	board := BoardArray{}
	for i := 0; i < StateStringLength; i++ {
		piece, _ := PieceFromNotation(s[i])
		board[i] = piece
	}
	return board, NilError
}
