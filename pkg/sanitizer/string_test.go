package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "John Doe", "John Doe"},
		{"leading and trailing space", "  John Doe  ", "John Doe"},
		{"internal runs collapsed", "John \t  Doe", "John Doe"},
		{"only whitespace", "   \t\n", ""},
		{"empty", "", ""},
		{"unicode preserved", "Björn Ødegård", "Björn Ødegård"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
