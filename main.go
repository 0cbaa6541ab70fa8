package main

import (
	"errornet/cmd"
	"errornet/pkg/crash"
)

func main() {
	// Globaler Crash-Handler - reicht unbehandelte Panics an den in
	// cmd installierten Reporter weiter (error_log.txt + Konsolenmeldung)
	defer crash.Handler()

	cmd.Execute()
}
