package movegen

import (
	. "github.com/cricklet/chessrules/internal/bitboards"
	. "github.com/cricklet/chessrules/internal/helpers"
)

var GetMovesBuffer, ReleaseMovesBuffer, StatsMovesBuffer = CreatePool(
	func() []Move { return make([]Move, 0, 256) },
	func(t *[]Move) { *t = (*t)[:0] },
)

func emitMoves(f func(move Move), pieceType PieceType, startIndex int, targets Bitboard) {
	endIndex, tempTargets := 0, targets
	for tempTargets != 0 {
		endIndex, tempTargets = tempTargets.NextIndexOfOne()
		f(Move{StartIndex: startIndex, EndIndex: endIndex, PieceType: pieceType})
	}
}

func generateJumpMovesByLookup(
	f func(move Move),
	pieceType PieceType,
	pieces Bitboard,
	selfOccupied Bitboard,
	attackMasks *[64]Bitboard,
) {
	startIndex, tempPieces := 0, pieces
	for tempPieces != 0 {
		startIndex, tempPieces = tempPieces.NextIndexOfOne()
		emitMoves(f, pieceType, startIndex, attackMasks[startIndex] & ^selfOccupied)
	}
}

func generateWalkMovesWithMagic(
	f func(move Move),
	pieceType PieceType,
	pieces Bitboard,
	allOccupied Bitboard,
	selfOccupied Bitboard,
	attacks func(index int, occupied Bitboard) Bitboard,
) {
	startIndex, tempPieces := 0, pieces
	for tempPieces != 0 {
		startIndex, tempPieces = tempPieces.NextIndexOfOne()
		emitMoves(f, pieceType, startIndex, attacks(startIndex, allOccupied) & ^selfOccupied)
	}
}

func emitPawnMoves(f func(move Move), player Player, targets Bitboard, offset int) {
	endIndex, tempTargets := 0, targets
	for tempTargets != 0 {
		endIndex, tempTargets = tempTargets.NextIndexOfOne()
		f(Move{
			StartIndex:     endIndex - offset,
			EndIndex:       endIndex,
			PieceType:      Pawn,
			NeedsPromotion: IsPromotionIndex(endIndex, player),
		})
	}
}

func generatePawnMoves(f func(move Move), b *Bitboards, player Player) {
	pawns := b.Players[player].Pieces[Pawn]
	enemyOccupied := b.Players[player.Other()].Occupied
	pushOffset := PawnPushOffsets[player]

	// one step
	single := ShiftWithoutWrapping(pawns, pushOffset) & b.Empty
	emitPawnMoves(f, player, single, pushOffset)

	// skip step, both squares in front must be empty
	skip := ShiftWithoutWrapping(pawns&MaskStartingPawnsForPlayer(player), pushOffset) & b.Empty
	skip = ShiftWithoutWrapping(skip, pushOffset) & b.Empty
	emitPawnMoves(f, player, skip, 2*pushOffset)

	// captures, the edge masks keep the a and h files from wrapping
	for _, captureOffset := range PawnCaptureOffsets[player] {
		captures := ShiftWithoutWrapping(pawns, captureOffset) & enemyOccupied
		emitPawnMoves(f, player, captures, captureOffset)
	}
}

// GeneratePseudoMoves calls f for every pseudo-legal move of player: pawns, knights and kings
// first, then bishops, rooks and queens. Checks, castling and en-passant are not considered.
// A pawn reaching the last rank is emitted once, flagged with NeedsPromotion.
func GeneratePseudoMoves(f func(move Move), b *Bitboards, player Player) {
	playerBoards := &b.Players[player]

	generatePawnMoves(f, b, player)

	generateJumpMovesByLookup(f, Knight, playerBoards.Pieces[Knight], playerBoards.Occupied, &KnightAttackMasks)
	generateJumpMovesByLookup(f, King, playerBoards.Pieces[King], playerBoards.Occupied, &KingAttackMasks)

	generateWalkMovesWithMagic(f, Bishop, playerBoards.Pieces[Bishop], b.Occupied, playerBoards.Occupied, BishopAttacks)
	generateWalkMovesWithMagic(f, Rook, playerBoards.Pieces[Rook], b.Occupied, playerBoards.Occupied, RookAttacks)
	generateWalkMovesWithMagic(f, Queen, playerBoards.Pieces[Queen], b.Occupied, playerBoards.Occupied, QueenAttacks)
}

func AppendPseudoMoves(moves *[]Move, b *Bitboards, player Player) {
	GeneratePseudoMoves(func(move Move) {
		*moves = append(*moves, move)
	}, b, player)
}
