package helpers

import (
	"fmt"
	"log"
	"os"

	"github.com/acarl005/stripansi"
	"golang.org/x/term"
)

type Logger interface {
	Println(v ...any)
	Printf(format string, v ...any)
	Print(v ...any)
}

type _defaultLogger struct {
}

func (l *_defaultLogger) Println(v ...any) {
	log.Println(v...)
}
func (l *_defaultLogger) Printf(format string, v ...any) {
	log.Printf(format, v...)
}
func (l *_defaultLogger) Print(v ...any) {
	log.Print(v...)
}

var DefaultLogger = _defaultLogger{}

type _silentLogger struct {
}

func (l *_silentLogger) Println(v ...any)               {}
func (l *_silentLogger) Printf(format string, v ...any) {}
func (l *_silentLogger) Print(v ...any)                 {}

var SilentLogger = _silentLogger{}

// FuncLogger forwards every formatted line to f.
type FuncLogger func(s string)

func (l FuncLogger) Println(v ...any) {
	l(fmt.Sprintln(v...))
}
func (l FuncLogger) Printf(format string, v ...any) {
	l(fmt.Sprintf(format, v...))
}
func (l FuncLogger) Print(v ...any) {
	l(fmt.Sprint(v...))
}

func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PlainText drops ANSI color codes, eg from BoardArray.Unicode.
func PlainText(s string) string {
	return stripansi.Strip(s)
}

// PrintBoard writes the colored board to a terminal and the uncolored one elsewhere.
func PrintBoard(f *os.File, b BoardArray) {
	s := b.Unicode()
	if !IsTerminal(f) {
		s = PlainText(s)
	}
	fmt.Fprint(f, s)
}
