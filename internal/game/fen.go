package game

import (
	"errors"
	"fmt"
	"strings"

	. "github.com/cricklet/chessrules/internal/helpers"
)

var ErrMalformedPlacement = errors.New("malformed fen placement")

const StartingFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParsePlacement reads the piece placement field of a fen string. Parsing is best effort:
// every problem is reported in the returned error and the affected squares stay empty, but
// the rest of the placement is still applied.
func ParsePlacement(fen string) (BoardArray, Error) {
	board := BoardArray{}
	errRef := ErrorRef{}

	fields := strings.Fields(fen)
	if len(fields) == 0 {
		errRef.Add(Errorf("%w: empty fen '%v'", ErrMalformedPlacement, fen))
		return board, errRef.Error()
	}
	placement := fields[0]

	rank, file := 7, 0

	endRank := func() {
		if file != 8 {
			errRef.Add(Errorf("%w: rank %v has %v squares in '%v'", ErrMalformedPlacement, rank+1, file, placement))
		}
	}

	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			endRank()
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			piece, err := PieceFromRune(rune(c))
			if !IsNil(err) {
				errRef.Add(Errorf("%w: unknown character '%c' at %v in '%v'", ErrMalformedPlacement, c, i, placement))
			} else if rank < 0 || file >= 8 {
				errRef.Add(Errorf("%w: '%c' at %v is off the board in '%v'", ErrMalformedPlacement, c, i, placement))
			} else {
				// ranks arrive from 8 down to 1 so index 0 ends up as a1
				board[rank*8+file] = piece
			}
			file++
		}
	}
	endRank()

	if rank != 0 {
		errRef.Add(Errorf("%w: expected 8 ranks, found %v in '%v'", ErrMalformedPlacement, 8-rank, placement))
	}

	return board, errRef.Error()
}

func FenStringForBoard(b BoardArray) string {
	s := ""
	for rank := 7; rank >= 0; rank-- {
		numSpaces := 0
		for file := 0; file < 8; file++ {
			index := IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)})
			piece := b[index]
			if piece.IsEmpty() {
				numSpaces++
				continue
			}
			if numSpaces > 0 {
				s += fmt.Sprint(numSpaces)
				numSpaces = 0
			}
			s += string(piece.Notation())
		}
		if numSpaces > 0 {
			s += fmt.Sprint(numSpaces)
		}
		if rank != 0 {
			s += "/"
		}
	}
	return s
}

func FenStringForPlayer(p Player) string {
	if p == White {
		return "w"
	} else {
		return "b"
	}
}

// FenStringForPosition fills the fields the engine does not track with their defaults.
func FenStringForPosition(b BoardArray, player Player) string {
	return fmt.Sprintf("%v %v - - 0 1", FenStringForBoard(b), FenStringForPlayer(player))
}
