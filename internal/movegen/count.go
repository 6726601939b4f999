package movegen

import (
	. "github.com/cricklet/chessrules/internal/bitboards"
	. "github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
)

// CountLeaves walks the pseudo-legal move tree of board to depth and counts its leaves.
// Kings can be captured like any other piece, so the counts diverge from legal perft once
// checks become possible.
func CountLeaves(board BoardArray, player Player, depth int) int {
	if depth <= 0 {
		return 1
	}

	b := NewBitboards(board)
	if depth == 1 {
		count := 0
		GeneratePseudoMoves(func(Move) { count++ }, &b, player)
		return count
	}

	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)
	AppendPseudoMoves(moves, &b, player)

	count := 0
	for _, move := range *moves {
		captured := PerformMove(&board, move.StartIndex, move.EndIndex)
		count += CountLeaves(board, player.Other(), depth-1)
		UndoMove(&board, move.StartIndex, move.EndIndex, captured)
	}
	return count
}

type MoveCount struct {
	Move   Move
	Leaves int
}

// CountLeavesPerMove splits CountLeaves by the first move, calling progress after each one.
func CountLeavesPerMove(board BoardArray, player Player, depth int, progress func(MoveCount)) []MoveCount {
	b := NewBitboards(board)
	moves := []Move{}
	AppendPseudoMoves(&moves, &b, player)

	result := make([]MoveCount, 0, len(moves))
	for _, move := range moves {
		captured := PerformMove(&board, move.StartIndex, move.EndIndex)
		count := MoveCount{move, CountLeaves(board, player.Other(), depth-1)}
		UndoMove(&board, move.StartIndex, move.EndIndex, captured)

		result = append(result, count)
		if progress != nil {
			progress(count)
		}
	}
	return result
}
