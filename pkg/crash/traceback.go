package crash

import (
	"fmt"
	"runtime"
	"strings"
)

// Frame ist ein einzelner Aufruf-Frame eines Stack-Traces
type Frame struct {
	Function string
	File     string
	Line     int
}

// String formatiert den Frame wie im Go-Runtime-Traceback
func (f Frame) String() string {
	return fmt.Sprintf("%s\n\t%s:%d", f.Function, f.File, f.Line)
}

// maxFrames begrenzt die Tiefe eines erfassten Stacks
const maxFrames = 64

// Callers erfasst den aktuellen Stack (innerster Aufruf zuerst).
// skip zählt wie bei runtime.Callers ab dem Aufrufer von Callers.
// Läuft gerade ein Panic, beginnt der Stack beim auslösenden Frame.
func Callers(skip int) []Frame {
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	var stack []Frame
	for {
		fr, more := frames.Next()
		stack = append(stack, Frame{
			Function: fr.Function,
			File:     fr.File,
			Line:     fr.Line,
		})
		if !more {
			break
		}
	}

	return trimPanicFrames(stack)
}

// trimPanicFrames entfernt Handler- und Runtime-Frames vor runtime.gopanic
func trimPanicFrames(stack []Frame) []Frame {
	for i, f := range stack {
		if f.Function == "runtime.gopanic" {
			return stack[i+1:]
		}
	}
	return stack
}

// KindOf liefert den dynamischen Typ eines Fehlerwerts
func KindOf(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}

// FormatTraceback formatiert Typ, Wert und Stack als Traceback-Text.
// Das Ergebnis endet immer mit einem Zeilenumbruch.
func FormatTraceback(kind string, value any, stack []Frame) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("panic: %v [%s]\n", value, kind))
	if len(stack) > 0 {
		sb.WriteString("\n")
	}
	for _, f := range stack {
		sb.WriteString(f.String())
		sb.WriteString("\n")
	}

	return sb.String()
}
