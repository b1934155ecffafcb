package validate

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"priya@example.com", true},
		{"  ops.team+hr@corp.co.in ", true},
		{"missing-at.example.com", false},
		{"no-tld@example", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Email(tt.in); got != tt.want {
			t.Errorf("Email(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"9876543210", true},
		{"+91 98765-43210", true},
		{"12345", false},
		{"phone", false},
	}

	for _, tt := range tests {
		if got := Phone(tt.in); got != tt.want {
			t.Errorf("Phone(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIFSC(t *testing.T) {
	if !IFSC("hdfc0001234") {
		t.Error("Expected lower-case IFSC to be accepted")
	}
	if IFSC("HDFC1001234") {
		t.Error("Expected fifth character to be zero")
	}
}
