package locale

import "testing"

func TestByCode(t *testing.T) {
	tests := []struct {
		code  string
		found bool
		rtl   bool
	}{
		{"en", true, false},
		{"ar", true, true},
		{"he", true, true},
		{"xx", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		l, ok := ByCode(tt.code)
		if ok != tt.found {
			t.Errorf("ByCode(%q) found = %v, want %v", tt.code, ok, tt.found)
			continue
		}
		if ok && l.RTL != tt.rtl {
			t.Errorf("ByCode(%q) RTL = %v, want %v", tt.code, l.RTL, tt.rtl)
		}
	}
}

func TestDefaultIsSupported(t *testing.T) {
	d := Default()
	if d.Code != DefaultCode {
		t.Errorf("Default().Code = %q, want %q", d.Code, DefaultCode)
	}
}

func TestSupportedIsACopy(t *testing.T) {
	first := Supported()
	first[0].Code = "mutated"

	if second := Supported(); second[0].Code == "mutated" {
		t.Error("Supported() returned a shared backing slice")
	}
}

func TestNoDuplicateCodes(t *testing.T) {
	seen := map[string]bool{}
	for _, l := range Supported() {
		if seen[l.Code] {
			t.Errorf("duplicate language code %q", l.Code)
		}
		seen[l.Code] = true
		if l.Code == "" || l.Name == "" || l.NativeName == "" {
			t.Errorf("incomplete language entry: %+v", l)
		}
	}
}
