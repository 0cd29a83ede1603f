package ui

import "testing"

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatPretty, false},
		{"pretty", FormatPretty, false},
		{"json", FormatJSON, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSetGlobalFormatter(t *testing.T) {
	t.Cleanup(func() { GlobalFormatter = NewPrettyFormatter() })

	if err := SetGlobalFormatter(FormatJSON); err != nil {
		t.Fatalf("SetGlobalFormatter(json) = %v", err)
	}
	if !GlobalFormatter.IsJSON() {
		t.Error("expected JSON formatter")
	}

	if err := SetGlobalFormatter("csv"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
