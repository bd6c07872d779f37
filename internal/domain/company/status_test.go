package company

import "testing"

func TestNextStatus(t *testing.T) {
	cases := []struct {
		current string
		next    string
		ok      bool
	}{
		{StatusInSetup, StatusConfigured, true},
		{StatusConfigured, StatusActive, true},
		{StatusActive, "", false},
		{"UNKNOWN", "", false},
	}
	for _, tc := range cases {
		next, ok := NextStatus(tc.current)
		if next != tc.next || ok != tc.ok {
			t.Errorf("NextStatus(%q) = (%q, %v), want (%q, %v)", tc.current, next, ok, tc.next, tc.ok)
		}
	}
}

func TestNextStatusNeverRegresses(t *testing.T) {
	seen := map[string]bool{}
	current := StatusInSetup
	for {
		if seen[current] {
			t.Fatalf("status cycle at %q", current)
		}
		seen[current] = true
		next, ok := NextStatus(current)
		if !ok {
			break
		}
		current = next
	}
	if current != StatusActive {
		t.Fatalf("wizard ends at %q, want %q", current, StatusActive)
	}
}

func TestValidRFC(t *testing.T) {
	valid := []string{"XAXX010101000", "ABC680524P76", "GOME800101AB1"}
	for _, rfc := range valid {
		if !ValidRFC(rfc) {
			t.Errorf("ValidRFC(%q) = false, want true", rfc)
		}
	}
	invalid := []string{"", "XAXX01010100", "xaxx010101000", "1234567890123"}
	for _, rfc := range invalid {
		if ValidRFC(rfc) {
			t.Errorf("ValidRFC(%q) = true, want false", rfc)
		}
	}
}
