package diag

// Severity ranks a diagnostic; higher values are more serious.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	// SevError marks input that cannot be evaluated.
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// AtLeast reports whether s is as serious as floor or more.
func (s Severity) AtLeast(floor Severity) bool { return s >= floor }
