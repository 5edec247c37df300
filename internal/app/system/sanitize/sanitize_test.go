package sanitize_test

import (
	"testing"

	"github.com/brightevents/gatepass/internal/app/system/sanitize"
)

func TestText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Acme Capital", "Acme Capital"},
		{"<script>alert(1)</script>Acme", "Acme"},
		{"<b>Managing</b> Director", "Managing Director"},
		{"  padded  ", "padded"},
		{"Research & Development", "Research & Development"},
	}
	for _, tt := range tests {
		if got := sanitize.Text(tt.in); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
