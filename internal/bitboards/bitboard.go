package bitboards

import (
	"fmt"
	"math/bits"
	"strings"

	. "github.com/cricklet/chessrules/internal/helpers"
)

type Bitboard uint64

type IndicesBuffer []int

var GetIndicesBuffer, ReleaseIndicesBuffer, StatsIndicesBuffer = CreatePool(
	func() IndicesBuffer {
		return make(IndicesBuffer, 0, 64)
	},
	func(x *IndicesBuffer) {
		*x = (*x)[:0]
	},
)

func (b Bitboard) EachIndexOfOne(buffer *IndicesBuffer) *IndicesBuffer {
	*buffer = (*buffer)[:0]

	temp := b
	for temp != 0 {
		var index int
		index, temp = temp.NextIndexOfOne()
		*buffer = append(*buffer, index)
	}

	return buffer
}

func (b Bitboard) EachIndexOfOneCallback(callback func(int)) {
	temp := b
	for temp != 0 {
		var index int
		index, temp = temp.NextIndexOfOne()
		callback(index)
	}
}

// NextIndexOfOne returns the lowest set index and the board with that bit cleared.
func (b Bitboard) NextIndexOfOne() (int, Bitboard) {
	index := bits.TrailingZeros64(uint64(b))
	return index, b & (b - 1)
}

func (b Bitboard) FirstIndexOfOne() int {
	return bits.TrailingZeros64(uint64(b))
}

func (b Bitboard) IsSet(index int) bool {
	return b&SingleBitboard(index) != 0
}

func OnesCount(b Bitboard) int {
	return bits.OnesCount64(uint64(b))
}

type Dir int

const (
	N Dir = iota
	S
	E
	W

	NE
	NW
	SE
	SW

	NNE
	NNW
	SSE
	SSW
	ENE
	ESE
	WNW
	WSW

	NumDirs
)

var KnightDirs = []Dir{
	NNE,
	NNW,
	SSE,
	SSW,
	ENE,
	ESE,
	WNW,
	WSW,
}

var RookDirs = []Dir{
	N,
	S,
	E,
	W,
}

var BishopDirs = []Dir{
	NE,
	NW,
	SE,
	SW,
}

var KingDirs = []Dir{
	N,
	S,
	E,
	W,
	NE,
	NW,
	SE,
	SW,
}

const (
	OffsetN int = 8
	OffsetS int = -8
	OffsetE int = 1
	OffsetW int = -1
)

var Offsets = [NumDirs]int{
	OffsetN,
	OffsetS,
	OffsetE,
	OffsetW,

	OffsetN + OffsetE,
	OffsetN + OffsetW,
	OffsetS + OffsetE,
	OffsetS + OffsetW,

	OffsetN + OffsetN + OffsetE,
	OffsetN + OffsetN + OffsetW,
	OffsetS + OffsetS + OffsetE,
	OffsetS + OffsetS + OffsetW,
	OffsetE + OffsetN + OffsetE,
	OffsetE + OffsetS + OffsetE,
	OffsetW + OffsetN + OffsetW,
	OffsetW + OffsetS + OffsetW,
}

var PawnPushOffsets = [2]int{
	OffsetN,
	OffsetS,
}

var PawnCaptureOffsets = [2][2]int{
	{ // WHITE
		OffsetN + OffsetW, OffsetN + OffsetE,
	},
	{
		OffsetS + OffsetW, OffsetS + OffsetE,
	},
}

var AllZeros Bitboard = Bitboard(0)
var AllOnes Bitboard = ^AllZeros

var Zeros = []int{0, 0, 0, 0, 0, 0, 0, 0}
var Ones = []int{1, 1, 1, 1, 1, 1, 1, 1}
var Sixes = []int{6, 6, 6, 6, 6, 6, 6, 6}
var Sevens = []int{7, 7, 7, 7, 7, 7, 7, 7}
var ZeroToSeven = []int{0, 1, 2, 3, 4, 5, 6, 7}

var (
	MaskWhiteStartingPawns = ^ZerosForRange(ZeroToSeven, Ones)
	MaskBlackStartingPawns = ^ZerosForRange(ZeroToSeven, Sixes)
)

var StartingPawnsForPlayer = [2]Bitboard{
	MaskWhiteStartingPawns,
	MaskBlackStartingPawns,
}

func MaskStartingPawnsForPlayer(player Player) Bitboard {
	return StartingPawnsForPlayer[player]
}

var PromotionRankForPlayer = [2]Bitboard{
	^ZerosForRange(ZeroToSeven, Sevens),
	^ZerosForRange(ZeroToSeven, Zeros),
}

func IsPromotionIndex(index int, player Player) bool {
	return PromotionRankForPlayer[player].IsSet(index)
}

var (
	MaskN Bitboard = ZerosForRange(ZeroToSeven, Sevens)
	MaskS Bitboard = ZerosForRange(ZeroToSeven, Zeros)
	MaskE Bitboard = ZerosForRange(Sevens, ZeroToSeven)
	MaskW Bitboard = ZerosForRange(Zeros, ZeroToSeven)

	MaskNN Bitboard = ZerosForRange(ZeroToSeven, Sixes)
	MaskSS Bitboard = ZerosForRange(ZeroToSeven, Ones)
	MaskEE Bitboard = ZerosForRange(Sixes, ZeroToSeven)
	MaskWW Bitboard = ZerosForRange(Ones, ZeroToSeven)
)

// PreMoveMasks[dir] clears the squares from which a step in dir would leave the board.
var PreMoveMasks = [NumDirs]Bitboard{
	MaskN,
	MaskS,
	MaskE,
	MaskW,

	MaskN & MaskE,
	MaskN & MaskW,
	MaskS & MaskE,
	MaskS & MaskW,

	MaskNN & MaskN & MaskE,
	MaskNN & MaskN & MaskW,
	MaskSS & MaskS & MaskE,
	MaskSS & MaskS & MaskW,
	MaskEE & MaskN & MaskE,
	MaskEE & MaskS & MaskE,
	MaskWW & MaskN & MaskW,
	MaskWW & MaskS & MaskW,
}

const _forcePositiveOffset = 32

var PreMoveMaskFromOffset [64]Bitboard = func() [64]Bitboard {
	result := [64]Bitboard{}
	for dir := Dir(0); dir < NumDirs; dir++ {
		result[_forcePositiveOffset+Offsets[dir]] = PreMoveMasks[dir]
	}
	return result
}()

func PremoveMaskFromOffset(offset int) Bitboard {
	return PreMoveMaskFromOffset[_forcePositiveOffset+offset]
}

// ShiftWithoutWrapping moves every bit by offset, dropping the bits that would cross an edge.
func ShiftWithoutWrapping(b Bitboard, offset int) Bitboard {
	return RotateTowardsIndex64(b&PremoveMaskFromOffset(offset), offset)
}

func generateJumpMasks(dirs []Dir) [64]Bitboard {
	result := [64]Bitboard{}

	for i := 0; i < 64; i++ {
		pieceBoard := SingleBitboard(i)
		for _, dir := range dirs {
			result[i] |= ShiftWithoutWrapping(pieceBoard, Offsets[dir])
		}
	}
	return result
}

var KnightAttackMasks [64]Bitboard = generateJumpMasks(KnightDirs)

var KingAttackMasks [64]Bitboard = generateJumpMasks(KingDirs)

var SingleBitboards [64]Bitboard = func() [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		result[i] = ShiftTowardsIndex64(1, i)
	}
	return result
}()

func SingleBitboard(index int) Bitboard {
	return SingleBitboards[index]
}

func ZerosForRange(fs []int, rs []int) Bitboard {
	if len(fs) != len(rs) {
		panic("slices have different length")
	}

	result := AllOnes
	for i := 0; i < len(fs); i++ {
		result &= ^SingleBitboard(IndexFromFileRank(FileRank{File: File(fs[i]), Rank: Rank(rs[i])}))
	}
	return result
}

func BitboardWithAllLocationsSet(locations []string) Bitboard {
	return ReduceSlice(
		MapSlice(locations, BoardIndexFromString),
		0,
		func(result Bitboard, index int) Bitboard {
			return result | SingleBitboard(index)
		},
	)
}

func ShiftTowardIndex0(b Bitboard, n int) Bitboard {
	return b >> n
}

func ShiftTowardsIndex64(b Bitboard, n int) Bitboard {
	return b << n
}

func RotateTowardsIndex64(b Bitboard, n int) Bitboard {
	return Bitboard(bits.RotateLeft64(uint64(b), n))
}

func (b Bitboard) String() string {
	ranks := [8]string{}
	for rank := 0; rank < 8; rank++ {
		r := uint8(ShiftTowardIndex0(b, rank*8))

		// mirror the bits so we're printing in a natural order
		// (10000000 for the top left / lowest index instead of 00000001)
		ranks[7-rank] = fmt.Sprintf("%08b", ReverseBits(r))
	}

	return strings.Join(ranks[0:], "\n")
}

func BitboardFromStrings(strings [8]string) Bitboard {
	b := Bitboard(0)
	for inverseRank, line := range strings {
		for file, c := range line {
			if c == '1' {
				index := IndexFromFileRank(FileRank{File: File(file), Rank: Rank(7 - inverseRank)})
				b |= SingleBitboard(index)
			}
		}
	}
	return b
}
