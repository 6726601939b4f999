package engine

import (
	"strings"

	. "github.com/cricklet/chessrules/internal/bitboards"
	. "github.com/cricklet/chessrules/internal/game"
	. "github.com/cricklet/chessrules/internal/helpers"
	. "github.com/cricklet/chessrules/internal/movegen"
)

type HistoryValue struct {
	Move     Move
	Captured Piece
}

// Engine owns one board and answers move queries for the side to move. The bitboards and the
// move list are rebuilt from the board whenever it changes. Callers serialize access.
type Engine struct {
	logger      Logger
	startingFen string

	board     BoardArray
	player    Player
	bitboards Bitboards
	moves     []Move

	history []HistoryValue

	setupErr Error
}

type EngineOption func(*Engine)

func WithLogger(logger Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithStartingFen(fen string) EngineOption {
	return func(e *Engine) {
		e.startingFen = fen
	}
}

// NewEngine sets up the starting position. Problems in a starting fen are logged and the
// parsable part of it is used; SetupError reports them.
func NewEngine(options ...EngineOption) *Engine {
	e := &Engine{}
	for _, o := range options {
		o(e)
	}
	if e.logger == nil {
		e.logger = &DefaultLogger
	}
	if e.startingFen == "" {
		e.startingFen = StartingFen
	}

	e.setupErr = e.SetupPosition(e.startingFen)
	return e
}

// SetupError is the error from setting up the starting fen, if any.
func (e *Engine) SetupError() Error {
	return e.setupErr
}

// SetupPosition replaces the board with a fen placement and clears the history. The side to
// move is read from the second fen field when there is one, otherwise white moves.
// Placement errors are returned (and logged) but do not stop the setup.
func (e *Engine) SetupPosition(fen string) Error {
	board, err := ParsePlacement(fen)

	player := White
	if fields := strings.Fields(fen); len(fields) > 1 {
		var playerErr Error
		player, playerErr = PlayerFromString(fields[1])
		if !IsNil(playerErr) {
			player = White
			err = Join(err, playerErr)
		}
	}

	if !IsNil(err) {
		e.logger.Println("setting up", fen, ":", err)
	}

	e.board = board
	e.player = player
	e.history = []HistoryValue{}
	e.regenerate()

	return err
}

// Restore replaces the board with a saved state string. An invalid string or player leaves
// the engine untouched.
func (e *Engine) Restore(state string, player Player) Error {
	if player != White && player != Black {
		return Errorf("restoring: invalid player %v", int(player))
	}
	board, err := BoardFromStateString(state)
	if !IsNil(err) {
		return Errorf("restoring: %w", err)
	}

	e.board = board
	e.player = player
	e.history = []HistoryValue{}
	e.regenerate()

	return NilError
}

func (e *Engine) regenerate() {
	e.bitboards = NewBitboards(e.board)

	moves := make([]Move, 0, len(e.moves))
	AppendPseudoMoves(&moves, &e.bitboards, e.player)
	e.moves = moves
}

func (e *Engine) Player() Player {
	return e.player
}

func (e *Engine) Board() BoardArray {
	return e.board
}

func (e *Engine) Bitboards() Bitboards {
	return e.bitboards
}

func (e *Engine) StateString() string {
	return StateStringForBoard(e.board)
}

func (e *Engine) FenString() string {
	return FenStringForPosition(e.board, e.player)
}

func (e *Engine) PieceAt(index int) Piece {
	MustBeIndex(index)
	return e.board[index]
}

// Moves is the pseudo-legal move list of the side to move. It must not be modified.
func (e *Engine) Moves() []Move {
	return e.moves
}

func (e *Engine) MovesFrom(origin int) []Move {
	MustBeIndex(origin)
	return FilterSlice(e.moves, func(m Move) bool {
		return m.StartIndex == origin
	})
}

// CanMoveFrom reports whether piece belongs to the side to move and has a move from origin.
func (e *Engine) CanMoveFrom(piece Piece, origin int) bool {
	MustBeIndex(origin)
	if piece.IsEmpty() || piece.Player != e.player {
		return false
	}
	for _, m := range e.moves {
		if m.StartIndex == origin {
			return true
		}
	}
	return false
}

func (e *Engine) CanMoveFromTo(origin int, destination int) bool {
	_, ok := e.findMove(origin, destination)
	return ok
}

func (e *Engine) findMove(origin int, destination int) (Move, bool) {
	MustBeIndex(origin)
	MustBeIndex(destination)
	for _, m := range e.moves {
		if m.StartIndex == origin && m.EndIndex == destination {
			return m, true
		}
	}
	return Move{}, false
}

// CommitMove moves whatever stands on origin to destination, hands the turn to the other side
// and regenerates the move list. Callers check CanMoveFromTo first; a move that is not in the
// list is still committed, but logged.
func (e *Engine) CommitMove(origin int, destination int) Move {
	move, ok := e.findMove(origin, destination)
	if !ok {
		move = Move{StartIndex: origin, EndIndex: destination, PieceType: e.board[origin].Type}
		e.logger.Printf("committing %v for %v, which is not in the move list\n", move.String(), e.player)
	}

	captured := PerformMove(&e.board, origin, destination)
	e.history = append(e.history, HistoryValue{Move: move, Captured: captured})

	e.player = e.player.Other()
	e.regenerate()

	return move
}

func (e *Engine) History() []HistoryValue {
	return e.history
}

func (e *Engine) LastMove() Optional[Move] {
	if len(e.history) > 0 {
		return Some(e.history[len(e.history)-1].Move)
	}
	return Empty[Move]()
}

// Rewind undoes up to num committed moves and returns how many it undid.
func (e *Engine) Rewind(num int) int {
	undone := Min(Max(num, 0), len(e.history))
	for i := 0; i < undone; i++ {
		h := e.history[len(e.history)-1]
		UndoMove(&e.board, h.Move.StartIndex, h.Move.EndIndex, h.Captured)
		e.history = e.history[:len(e.history)-1]
		e.player = e.player.Other()
	}
	if undone > 0 {
		e.regenerate()
	}
	return undone
}
