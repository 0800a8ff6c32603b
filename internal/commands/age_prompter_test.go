package commands

import "testing"

func TestValidAgeInput(t *testing.T) {
	valid := []string{"1", "10", "19", " 7 "}
	for _, raw := range valid {
		if err := validAgeInput(raw); err != nil {
			t.Errorf("validAgeInput(%q) = %v, want nil", raw, err)
		}
	}

	invalid := []string{"", "0", "20", "-3", "ten", "7.5"}
	for _, raw := range invalid {
		if err := validAgeInput(raw); err == nil {
			t.Errorf("validAgeInput(%q) = nil, want error", raw)
		}
	}
}
