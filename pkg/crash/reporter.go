package crash

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// LogFileName ist der Name der Crash-Log-Datei im Installationsverzeichnis
const LogFileName = "error_log.txt"

// Banner wird bei PrintTitle ausgegeben und steht am Ende jedes Reports
const Banner = "ErrorNet: Error reporting of the future."

// Reporter schreibt Crash-Reports und gibt eine Kurzmeldung auf der Konsole aus
type Reporter struct {
	config      Config
	fs          afero.Fs
	console     Console
	dir         string
	logPath     string
	onInterrupt func(kind string, value any, stack []Frame)
}

// Option konfiguriert die Abhängigkeiten eines Reporters
type Option func(*Reporter)

// WithDir setzt das Verzeichnis für error_log.txt (Standard: Verzeichnis des Executables)
func WithDir(dir string) Option {
	return func(r *Reporter) { r.dir = dir }
}

// WithFs setzt das Dateisystem (Standard: afero.NewOsFs)
func WithFs(fs afero.Fs) Option {
	return func(r *Reporter) { r.fs = fs }
}

// WithConsole setzt die Konsolenausgabe (Standard: ColorConsole auf stdout)
func WithConsole(c Console) Option {
	return func(r *Reporter) { r.console = c }
}

// WithInterruptHandler ersetzt die Standard-Behandlung von Benutzer-Abbrüchen
func WithInterruptHandler(f func(kind string, value any, stack []Frame)) Option {
	return func(r *Reporter) { r.onInterrupt = f }
}

// New erzeugt einen Reporter. Der Log-Pfad wird hier einmalig aufgelöst,
// ein späterer Wechsel des Arbeitsverzeichnisses ändert ihn nicht.
func New(config Config, opts ...Option) (*Reporter, error) {
	r := &Reporter{
		config:      config,
		onInterrupt: defaultInterrupt,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.console == nil {
		r.console = NewConsole(nil)
	}

	if r.dir == "" {
		dir, err := installDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve install directory: %w", err)
		}
		r.dir = dir
	}

	logPath := filepath.Join(r.dir, LogFileName)
	if abs, err := filepath.Abs(logPath); err == nil {
		logPath = abs
	}
	r.logPath = logPath

	if config.PrintTitle {
		r.console.Title(Banner + "\n")
	}

	return r, nil
}

// installDir ermittelt das Verzeichnis des laufenden Executables
func installDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Config liefert eine Kopie der Konfiguration
func (r *Reporter) Config() Config {
	return r.config
}

// LogPath liefert den absoluten Pfad von error_log.txt
func (r *Reporter) LogPath() string {
	return r.logPath
}

// HandleUncaught verarbeitet einen unbehandelten Fehler.
// Benutzer-Abbrüche werden ohne Ausgabe an den Interrupt-Handler weitergereicht.
// Fehler beim Schreiben der Log-Datei werden zurückgegeben, danach erfolgt keine Konsolenausgabe.
func (r *Reporter) HandleUncaught(kind string, value any, stack []Frame) error {
	if IsInterrupt(kind, value) {
		r.onInterrupt(kind, value, stack)
		return nil
	}

	if r.config.ErrorLog {
		if err := r.writeLog(kind, value, stack); err != nil {
			return err
		}
	}

	r.console.Error(fmt.Sprintf("An error occurred: %v.", value))
	if r.config.ErrorLog {
		r.console.Hint(fmt.Sprintf("The error has been logged to '%s'.", r.logPath))
	}
	r.console.Hint(r.config.reportHint())

	return nil
}

// writeLog ersetzt error_log.txt durch den Report des aktuellen Fehlers.
// Löschen und Neuanlegen ist nicht atomar.
func (r *Reporter) writeLog(kind string, value any, stack []Frame) error {
	exists, err := afero.Exists(r.fs, r.logPath)
	if err != nil {
		return fmt.Errorf("failed to stat crash log %s: %w", r.logPath, err)
	}
	if exists {
		if err := r.fs.Remove(r.logPath); err != nil {
			return fmt.Errorf("failed to remove old crash log: %w", err)
		}
	}

	f, err := r.fs.Create(r.logPath)
	if err != nil {
		return fmt.Errorf("failed to create crash log: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(r.formatReport(kind, value, stack)); err != nil {
		return fmt.Errorf("failed to write crash log: %w", err)
	}

	return f.Close()
}

// formatReport formatiert den Inhalt von error_log.txt
func (r *Reporter) formatReport(kind string, value any, stack []Frame) string {
	var sb strings.Builder

	sb.WriteString("Uncaught exception:\n\n")
	sb.WriteString(FormatTraceback(kind, value, stack))
	sb.WriteString("\n")
	sb.WriteString(r.config.reportHint())
	sb.WriteString("\n\n\n")
	sb.WriteString("Handled by " + Banner)

	return sb.String()
}

// LastReport liest den zuletzt gespeicherten Report.
// Existiert keiner, erfüllt der Fehler errors.Is(err, os.ErrNotExist).
func (r *Reporter) LastReport() (string, error) {
	data, err := afero.ReadFile(r.fs, r.logPath)
	if err != nil {
		return "", fmt.Errorf("failed to read crash log: %w", err)
	}
	return string(data), nil
}
