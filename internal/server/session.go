package server

import (
	"fmt"

	. "github.com/cricklet/chessrules/internal/engine"
	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/storage"
)

type UpdateToWeb struct {
	FenString      string   `json:"fenString"`
	StateString    string   `json:"stateString"`
	LastMove       string   `json:"lastMove"`
	Selection      string   `json:"selection"`
	CanMove        bool     `json:"canMove"`
	PossibleMoves  []string `json:"possibleMoves"`
	NeedsPromotion []string `json:"needsPromotion"`
	Player         string   `json:"player"`
	Saved          []string `json:"saved"`
}

func (u UpdateToWeb) String() string {
	return fmt.Sprint("UpdateToWeb: ", u.FenString, ", ", u.LastMove, ", ", u.Selection, ", ", u.PossibleMoves)
}

type MessageFromWeb struct {
	NewFen    *string `json:"newFen"`
	State     *string `json:"state"`
	Player    *string `json:"player"`
	Selection *string `json:"selection"`
	Move      *string `json:"move"`
	Rewind    *int    `json:"rewind"`
	Save      *string `json:"save"`
	Load      *string `json:"load"`
}

func (u MessageFromWeb) String() string {
	if u.NewFen != nil {
		return fmt.Sprint("MessageFromWeb NewFen: ", *u.NewFen)
	}
	if u.State != nil {
		return fmt.Sprint("MessageFromWeb State: ", *u.State)
	}
	if u.Selection != nil {
		return fmt.Sprint("MessageFromWeb Selection: ", *u.Selection)
	}
	if u.Move != nil {
		return fmt.Sprint("MessageFromWeb Move: ", *u.Move)
	}
	if u.Rewind != nil {
		return fmt.Sprint("MessageFromWeb Rewind: ", *u.Rewind)
	}
	if u.Save != nil {
		return fmt.Sprint("MessageFromWeb Save: ", *u.Save)
	}
	if u.Load != nil {
		return fmt.Sprint("MessageFromWeb Load: ", *u.Load)
	}
	return "MessageFromWeb unknown"
}

// Session is one connected board. Messages must be handled one at a time.
type Session struct {
	logger  Logger
	engine  *Engine
	storage *storage.Storage
}

func NewSession(logger Logger, store *storage.Storage) *Session {
	return &Session{
		logger:  logger,
		engine:  NewEngine(WithLogger(logger)),
		storage: store,
	}
}

func (s *Session) Engine() *Engine {
	return s.engine
}

func (s *Session) finalizeUpdate(update UpdateToWeb) UpdateToWeb {
	update.FenString = s.engine.FenString()
	update.StateString = s.engine.StateString()
	update.Player = s.engine.Player().String()
	if lastMove := s.engine.LastMove(); lastMove.HasValue() {
		update.LastMove = lastMove.Value().String()
	}
	return update
}

func (s *Session) selectSquare(selection string, update *UpdateToWeb) Error {
	index, err := IndexFromString(selection)
	if !IsNil(err) {
		return err
	}

	update.Selection = selection
	update.CanMove = s.engine.CanMoveFrom(s.engine.PieceAt(index), index)
	if !update.CanMove {
		return NilError
	}

	for _, m := range s.engine.MovesFrom(index) {
		update.PossibleMoves = append(update.PossibleMoves, m.String())
		if m.NeedsPromotion {
			update.NeedsPromotion = append(update.NeedsPromotion, m.String())
		}
	}
	return NilError
}

func (s *Session) commitMove(moveString string) Error {
	move, err := MoveFromString(moveString)
	if !IsNil(err) {
		return err
	}
	if !s.engine.CanMoveFrom(s.engine.PieceAt(move.StartIndex), move.StartIndex) ||
		!s.engine.CanMoveFromTo(move.StartIndex, move.EndIndex) {
		return Errorf("%v is not a move for %v", moveString, s.engine.Player())
	}
	s.engine.CommitMove(move.StartIndex, move.EndIndex)
	return NilError
}

func (s *Session) restore(state string, playerString string) Error {
	player, err := PlayerFromString(playerString)
	if !IsNil(err) {
		return err
	}
	return s.engine.Restore(state, player)
}

func (s *Session) save(name string) Error {
	if s.storage == nil {
		return Errorf("no storage")
	}
	return s.storage.Save(name, storage.SavedGame{
		State:  s.engine.StateString(),
		Player: s.engine.Player(),
	})
}

func (s *Session) load(name string) Error {
	if s.storage == nil {
		return Errorf("no storage")
	}
	game, err := s.storage.Load(name)
	if !IsNil(err) {
		return err
	}
	return s.engine.Restore(game.State, game.Player)
}

func (s *Session) savedNames() []string {
	if s.storage == nil {
		return nil
	}
	names, err := s.storage.List()
	if !IsNil(err) {
		s.logger.Println("list:", err)
	}
	return names
}

// Update describes the board without changing it.
func (s *Session) Update() UpdateToWeb {
	return s.finalizeUpdate(UpdateToWeb{Saved: s.savedNames()})
}

// HandleMessage applies one message and returns the board to send back. Problems are logged
// and the current board is sent anyway.
func (s *Session) HandleMessage(message MessageFromWeb) UpdateToWeb {
	s.logger.Println("received", message)

	var update UpdateToWeb
	var err Error

	if message.NewFen != nil {
		err = s.engine.SetupPosition(*message.NewFen)
	} else if message.State != nil {
		player := "w"
		if message.Player != nil {
			player = *message.Player
		}
		err = s.restore(*message.State, player)
	} else if message.Selection != nil {
		if *message.Selection != "" {
			err = s.selectSquare(*message.Selection, &update)
		}
	} else if message.Move != nil {
		err = s.commitMove(*message.Move)
	} else if message.Rewind != nil {
		s.engine.Rewind(*message.Rewind)
	} else if message.Save != nil {
		err = s.save(*message.Save)
		update.Saved = s.savedNames()
	} else if message.Load != nil {
		err = s.load(*message.Load)
		update.Saved = s.savedNames()
	}

	if !IsNil(err) {
		s.logger.Println(message, ":", err)
	}

	return s.finalizeUpdate(update)
}
