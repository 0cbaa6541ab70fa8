package crash

// Config steuert das Verhalten des Reporters.
// Wird einmal beim Start erzeugt und danach nicht mehr verändert.
type Config struct {
	// PrintTitle gibt beim Erzeugen des Reporters ein Banner aus
	PrintTitle bool
	// ReportTo ist ein optionales Meldeziel (z.B. Issue-Tracker-URL), leer = keins.
	// Wird nur angezeigt, niemals kontaktiert.
	ReportTo string
	// ErrorLog schreibt Crash-Details nach error_log.txt
	ErrorLog bool
}

// DefaultConfig liefert die Standard-Konfiguration
func DefaultConfig() Config {
	return Config{
		PrintTitle: false,
		ReportTo:   "",
		ErrorLog:   true,
	}
}

// reportHint liefert den Hinweis zum Melden des Fehlers
func (c Config) reportHint() string {
	if c.ReportTo != "" {
		return "Please report this error to the developers of the program, at " + c.ReportTo + "."
	}
	return "Please report this error to the developers of the program."
}
