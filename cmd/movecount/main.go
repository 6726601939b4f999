package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cricklet/chessrules/internal/bitboards"
	. "github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
	. "github.com/cricklet/chessrules/internal/movegen"
	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
)

// Counts the leaves of the pseudo-legal move tree, eg
//
//	movecount depth=4 fen="r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w" profile
func main() {
	depth := 3
	fen := StartingFen

	for _, arg := range os.Args[1:] {
		if arg == "profile" {
			defer profile.Start(profile.ProfilePath(".")).Stop()
		} else if value, ok := strings.CutPrefix(arg, "depth="); ok {
			parsed, err := strconv.Atoi(value)
			if err != nil || parsed < 1 {
				fmt.Fprintln(os.Stderr, "invalid depth", value)
				os.Exit(1)
			}
			depth = parsed
		} else if value, ok := strings.CutPrefix(arg, "fen="); ok {
			fen = value
		}
	}

	board, err := ParsePlacement(fen)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, "parsing fen:", err)
	}
	player := White
	if fields := strings.Fields(fen); len(fields) > 1 {
		player, err = PlayerFromString(fields[1])
		if !IsNil(err) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	PrintBoard(os.Stdout, board)
	fmt.Println(FenStringForPosition(board, player))

	start := time.Now()
	total := 0

	firstMoves := CountLeaves(board, player, 1)
	bar := CreateProgressBar(firstMoves, fmt.Sprintf("depth %v", depth))
	counts := CountLeavesPerMove(board, player, depth, func(c MoveCount) {
		total += c.Leaves
		bar.Add(1)
	})
	bar.Close()

	for _, c := range counts {
		fmt.Printf("%v: %v\n", c.Move.DebugString(), humanize.Comma(int64(c.Leaves)))
	}
	fmt.Println()
	fmt.Println("moves:", RateString(total, time.Since(start)))
	fmt.Println("move buffers:", StatsMovesBuffer())
	fmt.Println("index buffers:", bitboards.StatsIndicesBuffer())
}
