// Package crash fängt unbehandelte Panics und Fehler ab, schreibt einen
// Crash-Report nach error_log.txt und gibt eine kurze farbige Meldung aus.
//
// Verwendung in main():
//
//	r, err := crash.New(crash.DefaultConfig())
//	...
//	crash.Install(r)
//	defer crash.Handler()
package crash

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Hook empfängt unbehandelte Fehler aus Handler, Fail und Go
type Hook interface {
	HandleUncaught(kind string, value any, stack []Frame) error
}

// installed ist der prozessweite Hook, nil = Runtime-Standardverhalten
var installed Hook

// terminalResetFunc ist eine optionale Funktion zum Zurücksetzen des Terminals
var terminalResetFunc func()

// exit beendet den Prozess, in Tests ersetzbar
var exit = os.Exit

// Install setzt den prozessweiten Hook und liefert den vorherigen zurück.
// Install(nil) entfernt den Hook.
func Install(h Hook) Hook {
	previous := installed
	installed = h
	return previous
}

// Installed liefert den aktuell installierten Hook
func Installed() Hook {
	return installed
}

// SetTerminalResetFunc setzt eine Funktion zum Zurücksetzen des Terminals bei Crash
func SetTerminalResetFunc(f func()) {
	terminalResetFunc = f
}

// SetExitFunc ersetzt os.Exit und liefert eine Funktion zum Wiederherstellen
func SetExitFunc(f func(code int)) (restore func()) {
	previous := exit
	exit = f
	return func() { exit = previous }
}

// Handler ist der globale Crash-Handler, der als defer in main() verwendet wird.
// Ohne installierten Hook wird der Panic unverändert weitergereicht.
func Handler() {
	r := recover()
	if r == nil {
		return
	}
	if installed == nil {
		panic(r)
	}
	dispatch(KindOf(r), r, Callers(1))
}

// Fail behandelt einen bis main() durchgereichten Fehler wie einen Panic.
// Ein nil-Fehler wird ignoriert.
func Fail(err error) {
	if err == nil {
		return
	}
	if installed == nil {
		// Abbrüche ohne Ausgabe, wie mit installiertem Hook
		if IsInterrupt(KindOf(err), err) {
			exit(ExitCodeInterrupt)
			return
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		exit(ExitCodeCrash)
		return
	}
	dispatch(KindOf(err), err, Callers(1))
}

// dispatch reicht den Fehler an den Hook weiter und beendet den Prozess.
// Scheitert der Hook selbst, wird dessen Fehler als Panic weitergegeben.
func dispatch(kind string, value any, stack []Frame) {
	if !IsInterrupt(kind, value) {
		resetTerminal()
	}

	if err := installed.HandleUncaught(kind, value, stack); err != nil {
		panic(fmt.Errorf("crash reporter failed while handling %v: %w", value, err))
	}

	if IsInterrupt(kind, value) {
		exit(ExitCodeInterrupt)
		return
	}
	exit(ExitCodeCrash)
}

// resetTerminal setzt das Terminal in einen sauberen Zustand zurück
func resetTerminal() {
	// Benutzerdefinierte Reset-Funktion aufrufen falls vorhanden
	if terminalResetFunc != nil {
		// Sicher ausführen - könnte selbst paniken
		func() {
			defer func() { _ = recover() }()
			terminalResetFunc()
		}()
	}

	// ANSI-Sequenzen nur an echte Terminals senden
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	fmt.Print("\033[?25h")   // Cursor anzeigen
	fmt.Print("\033[0m")     // Alle Attribute zurücksetzen
	fmt.Print("\033[?1049l") // Alternate Screen Buffer verlassen (falls aktiv)
	fmt.Println()
}

// Wrap wickelt eine Goroutine-Funktion mit Panic-Recovery ein.
// Der Fehlerwert wird um den Namen der Goroutine ergänzt.
// Verwendung: go crash.Wrap("taskName", func() { ... })()
func Wrap(name string, f func()) func() {
	return func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if installed == nil {
				panic(r)
			}
			dispatch(KindOf(r), GoroutinePanic{Name: name, Value: r}, Callers(1))
		}()
		f()
	}
}

// Go startet eine Goroutine mit automatischem Panic-Recovery
// Verwendung: crash.Go("taskName", func() { ... })
func Go(name string, f func()) {
	go Wrap(name, f)()
}

// GoroutinePanic ist ein in einer benannten Goroutine abgefangener Panic
type GoroutinePanic struct {
	Name  string
	Value any
}

func (p GoroutinePanic) Error() string {
	return fmt.Sprintf("goroutine '%s': %v", p.Name, p.Value)
}

// Unwrap gibt einen enthaltenen Fehler für errors.Is/As frei
func (p GoroutinePanic) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}
