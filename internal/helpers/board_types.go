package helpers

import (
	"strings"
)

type File uint
type Rank uint

type FileRank struct {
	File File
	Rank Rank
}

type Player uint

const (
	White Player = iota
	Black
)

var _playerStrings = [2]string{
	"white", "black",
}

func (p Player) String() string {
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

func PlayerFromString(c string) (Player, Error) {
	switch c {
	case "b", "black":
		return Black, NilError
	case "w", "white":
		return White, NilError
	default:
		return White, Errorf("invalid player %q", c)
	}
}

type PieceType uint

// Values match the 1-6 piece tags hosts use; NoPieceType marks an empty square.
const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	NumPieceTypes
)

var AllPieceTypes = [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

func (p PieceType) String() string {
	return [NumPieceTypes]string{
		"?", "p", "n", "b", "r", "q", "k",
	}[p]
}

func (p PieceType) IsValid() bool {
	return p >= Pawn && p <= King
}

// Piece is the occupant of a square. The zero value is an empty square.
type Piece struct {
	Type   PieceType
	Player Player
}

var NoPiece = Piece{}

func NewPiece(player Player, pieceType PieceType) Piece {
	return Piece{Type: pieceType, Player: player}
}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

func (p Piece) IsWhite() bool {
	return !p.IsEmpty() && p.Player == White
}

func (p Piece) IsBlack() bool {
	return !p.IsEmpty() && p.Player == Black
}

// IsEnemyOf reports whether both squares are occupied and owned by different players.
func (p Piece) IsEnemyOf(o Piece) bool {
	return !p.IsEmpty() && !o.IsEmpty() && p.Player != o.Player
}

const EmptyNotation byte = '0'

const _whiteNotation = "0PNBRQK"
const _blackNotation = "0pnbrqk"

// Notation is the single-character state-string form: '0' when empty, uppercase for white.
func (p Piece) Notation() byte {
	if p.IsEmpty() {
		return EmptyNotation
	}
	if p.Player == White {
		return _whiteNotation[p.Type]
	}
	return _blackNotation[p.Type]
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return " "
	}
	return string(p.Notation())
}

func PieceFromNotation(c byte) (Piece, Error) {
	if c == EmptyNotation {
		return NoPiece, NilError
	}
	if i := strings.IndexByte(_whiteNotation, c); i > 0 {
		return NewPiece(White, PieceType(i)), NilError
	}
	if i := strings.IndexByte(_blackNotation, c); i > 0 {
		return NewPiece(Black, PieceType(i)), NilError
	}
	return NoPiece, Errorf("invalid piece notation %q", c)
}

// PieceFromRune accepts only the twelve piece letters, never '0'.
func PieceFromRune(c rune) (Piece, Error) {
	if c > 127 || c == rune(EmptyNotation) {
		return NoPiece, Errorf("invalid piece %q", c)
	}
	return PieceFromNotation(byte(c))
}

func (p Piece) Unicode() string {
	if p.IsEmpty() {
		return " "
	}
	return [NumPieceTypes]string{
		" ", "♟", "♞", "♝", "♜", "♛", "♚",
	}[p.Type]
}

func (f File) String() string {
	return [8]string{
		"a", "b", "c", "d", "e", "f", "g", "h",
	}[f]
}
func (r Rank) String() string {
	return [8]string{
		"1", "2", "3", "4", "5", "6", "7", "8",
	}[r]
}

func RankFromChar(c byte) (Rank, Error) {
	rank := int(c) - '1'
	if rank < 0 || rank >= 8 {
		return 0, Errorf("rank invalid %q", c)
	}
	return Rank(rank), NilError
}

func FileFromChar(c byte) (File, Error) {
	file := int(c) - 'a'
	if file < 0 || file >= 8 {
		return 0, Errorf("file invalid %q", c)
	}
	return File(file), NilError
}

func (v FileRank) String() string {
	return v.File.String() + v.Rank.String()
}

func FileRankFromString(s string) (FileRank, Error) {
	if len(s) != 2 {
		return FileRank{}, Errorf("invalid location %q", s)
	}

	file, fileErr := FileFromChar(s[0])
	rank, rankErr := RankFromChar(s[1])

	if !IsNil(fileErr) || !IsNil(rankErr) {
		return FileRank{}, Join(Errorf("invalid location %q", s), fileErr, rankErr)
	}

	return FileRank{file, rank}, NilError
}

func IndexFromFileRank(location FileRank) int {
	return int(location.Rank)*8 + int(location.File)
}

func FileRankFromIndex(index int) FileRank {
	f := File(index & 0b111)
	r := Rank(index >> 3)
	return FileRank{f, r}
}

func IsValidIndex(index int) bool {
	return index >= 0 && index < 64
}

// MustBeIndex panics when index falls outside the board; out-of-range squares are a caller bug.
func MustBeIndex(index int) {
	if !IsValidIndex(index) {
		panic(Errorf("square index %v outside 0-63", index))
	}
}

func StringFromBoardIndex(index int) string {
	return FileRankFromIndex(index).String()
}

func BoardIndexFromString(s string) int {
	location, err := FileRankFromString(s)
	if !IsNil(err) {
		panic(err)
	}
	return IndexFromFileRank(location)
}

func IndexFromString(s string) (int, Error) {
	location, err := FileRankFromString(s)
	if !IsNil(err) {
		return 0, err
	}
	return IndexFromFileRank(location), NilError
}

// BoardArray is indexed rank*8+file, a1 first.
type BoardArray [64]Piece

// NaturalBoardArray lists rank 8 first, the order a board is read top to bottom.
type NaturalBoardArray [64]Piece

func (n NaturalBoardArray) AsBoardArray() BoardArray {
	b := BoardArray{}

	for rank := 0; rank < 8; rank++ {
		index := rank * 8
		newIndex := (7 - rank) * 8
		copy(b[index:index+8], n[newIndex:newIndex+8])
	}

	return b
}

func (b BoardArray) String() string {
	result := ""
	for rank := 7; rank >= 0; rank-- {
		row := b[rank*8 : (rank+1)*8]
		for _, p := range row {
			result += p.String()
		}
		if rank != 0 {
			result += "\n"
		}
	}
	return result
}

func (b BoardArray) CountPieces(piece Piece) int {
	count := 0
	for _, p := range b {
		if p == piece {
			count++
		}
	}
	return count
}

const _hintForeground = "\033[38;5;244m"
const _whiteForeground = "\033[38;5;255m"
const _blackForeground = "\033[38;5;232m"
const _whiteBackground = "\033[48;5;244m"
const _blackBackground = "\033[48;5;243m"
const _resetColors = "\x1b[0m"

func (b BoardArray) Unicode() string {
	result := ""
	result += "  "
	for file := 0; file < 8; file++ {
		result += _hintForeground + " " + File(file).String() + " " + _resetColors
	}
	result += "\n"

	for rank := 7; rank >= 0; rank-- {
		result += _hintForeground + Rank(rank).String() + " " + _resetColors
		for file := 0; file < 8; file++ {
			squareColor := (file%2 + rank%2) % 2
			piece := b[IndexFromFileRank(FileRank{File(file), Rank(rank)})]

			if squareColor == int(White) {
				result += _whiteBackground
			} else {
				result += _blackBackground
			}
			if piece.IsWhite() {
				result += _whiteForeground
			} else {
				result += _blackForeground
			}

			result += " " + piece.Unicode() + " "
			result += _resetColors
		}
		result += "\n"
	}

	return result
}

type Move struct {
	StartIndex int
	EndIndex   int
	PieceType  PieceType

	// Set when a pawn reaches the last rank. Promotion itself is left to the host.
	NeedsPromotion bool
}

func (m Move) String() string {
	return StringFromBoardIndex(m.StartIndex) + StringFromBoardIndex(m.EndIndex)
}

func (m Move) DebugString() string {
	s := m.PieceType.String() + StringFromBoardIndex(m.StartIndex) + StringFromBoardIndex(m.EndIndex)
	if m.NeedsPromotion {
		s += "=?"
	}
	return s
}

// MoveFromString parses long algebraic "e2e4". The piece type is left for the caller.
func MoveFromString(s string) (Move, Error) {
	if len(s) != 4 {
		return Move{}, Errorf("invalid move %q", s)
	}
	start, startErr := IndexFromString(s[0:2])
	end, endErr := IndexFromString(s[2:4])
	if !IsNil(startErr) || !IsNil(endErr) {
		return Move{}, Join(Errorf("invalid move %q", s), startErr, endErr)
	}
	return Move{StartIndex: start, EndIndex: end}, NilError
}
