package crash

import (
	"errors"
	"os"
)

// KindInterrupt kennzeichnet einen Benutzer-Abbruch (Ctrl+C)
const KindInterrupt = "interrupt"

// ErrInterrupt wird von Befehlen zurückgegeben, die durch den Benutzer abgebrochen wurden
var ErrInterrupt = errors.New("interrupted")

// Exit-Codes
const (
	ExitCodeCrash     = 1
	ExitCodeInterrupt = 130 // 128 + SIGINT
)

// IsInterrupt prüft ob ein Fehler ein Benutzer-Abbruch ist und nicht gemeldet werden soll
func IsInterrupt(kind string, value any) bool {
	if kind == KindInterrupt {
		return true
	}

	switch v := value.(type) {
	case GoroutinePanic:
		return IsInterrupt(KindOf(v.Value), v.Value)
	case os.Signal:
		return v == os.Interrupt
	case error:
		return errors.Is(v, ErrInterrupt)
	}
	return false
}

// defaultInterrupt beendet den Prozess wie ein normaler SIGINT-Abbruch
func defaultInterrupt(string, any, []Frame) {
	exit(ExitCodeInterrupt)
}
