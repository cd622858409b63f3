package diag

import "testing"

func TestSeverity(t *testing.T) {
	tests := []struct {
		sev     Severity
		name    string
		isError bool
		warns   bool
	}{
		{SevInfo, "INFO", false, false},
		{SevWarning, "WARNING", false, true},
		{SevError, "ERROR", true, true},
		{Severity(9), "UNKNOWN", true, true},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.name {
			t.Fatalf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.sev.AtLeast(SevError); got != tt.isError {
			t.Fatalf("%s.AtLeast(SevError) = %v", tt.name, got)
		}
		if got := tt.sev.AtLeast(SevWarning); got != tt.warns {
			t.Fatalf("%s.AtLeast(SevWarning) = %v", tt.name, got)
		}
	}
}
