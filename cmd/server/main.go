package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	. "github.com/cricklet/chessrules/internal/helpers"
	"github.com/cricklet/chessrules/internal/server"
	"github.com/cricklet/chessrules/internal/storage"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
			os.Exit(1)
		}
	}()

	port := 8002
	dataDir := ""

	args := os.Args[1:]
	for _, arg := range args {
		if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
			port = int(parsed)
		} else if dir, ok := strings.CutPrefix(arg, "data="); ok {
			dataDir = dir
		}
	}

	store, err := storage.Open(dataDir)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if dataDir == "" {
		log.Println("saving games in memory")
	} else {
		log.Println("saving games in", dataDir)
	}
	log.Println("serving at", port)

	err = serve(store, fmt.Sprintf(":%v", port))
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// serve blocks until the listener fails, then closes the store.
func serve(store *storage.Storage, addr string) Error {
	err := Wrap(http.ListenAndServe(addr, server.NewServer(store).Router()))
	return Join(err, store.Close())
}
