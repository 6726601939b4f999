package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/storage"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type Server struct {
	storage  *storage.Storage
	upgrader websocket.Upgrader
}

func NewServer(store *storage.Storage) *Server {
	return &Server{storage: store}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/ws", s.ws)
	router.HandleFunc("/games", s.listGames).Methods(http.MethodGet)
	router.HandleFunc("/games/{name}", s.getGame).Methods(http.MethodGet)
	router.HandleFunc("/games/{name}", s.deleteGame).Methods(http.MethodDelete)
	return router
}

func (s *Server) ws(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if !IsNil(err) {
		log.Println("upgrade:", err)
		return
	}
	defer c.Close()

	// everything below runs on this goroutine, so writes never race
	var forward = func(message string) {
		log.Print("logging: ", message)
		bytes, err := json.Marshal([]string{message})
		if !IsNil(err) {
			fmt.Fprintln(os.Stderr, fmt.Sprint("logging: json marshal: ", err))
		}
		err = c.WriteMessage(websocket.TextMessage, bytes)
		if !IsNil(err) {
			fmt.Fprintln(os.Stderr, fmt.Sprint("logging: websocket: ", err))
		}
	}
	logger := FuncLogger(func(message string) {
		forward(fmt.Sprintf("server: %v", message))
	})

	session := NewSession(logger, s.storage)

	var sendUpdate = func(update UpdateToWeb) {
		bytes, err := json.Marshal(update)
		if !IsNil(err) {
			logger.Println("update: json marshal: ", err)
			return
		}
		err = c.WriteMessage(websocket.TextMessage, bytes)
		if !IsNil(err) {
			logger.Println("websocket: ", err)
		}
	}

	sendUpdate(session.Update())

	for {
		_, bytes, err := c.ReadMessage()
		if !IsNil(err) {
			log.Printf("closing: %v", err)
			break
		}

		var message MessageFromWeb
		err = json.Unmarshal(bytes, &message)
		if !IsNil(err) {
			logger.Println("json unmarshal: ", err)
			continue
		}
		sendUpdate(session.HandleMessage(message))
	}
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Println("response: ", err)
	}
}

func writeError(w http.ResponseWriter, err Error) {
	status := http.StatusInternalServerError
	if errors.Is(err, storage.ErrGameNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	names, err := s.storage.List()
	if !IsNil(err) {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.storage.Load(mux.Vars(r)["name"])
	if !IsNil(err) {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) deleteGame(w http.ResponseWriter, r *http.Request) {
	err := s.storage.Delete(mux.Vars(r)["name"])
	if !IsNil(err) {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
