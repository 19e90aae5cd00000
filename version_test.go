package kinvalidator

import "testing"

func TestParseSchemaVersion(t *testing.T) {
	tests := []struct {
		value string
		major int
		minor int
		patch int
		ok    bool
	}{
		{"1.0.0", 1, 0, 0, true},
		{"2.14.3", 2, 14, 3, true},
		{"01.0.0", 1, 0, 0, true},
		{"1.0", 0, 0, 0, false},
		{"1.0.0.0", 0, 0, 0, false},
		{"1.0.x", 0, 0, 0, false},
		{"1..0", 0, 0, 0, false},
		{"1.+2.3", 0, 0, 0, false},
		{"-1.0.0", 0, 0, 0, false},
		{"", 0, 0, 0, false},
	}

	for _, tt := range tests {
		major, minor, patch, ok := ParseSchemaVersion(tt.value)
		if ok != tt.ok {
			t.Errorf("ParseSchemaVersion(%q) ok = %v; want %v", tt.value, ok, tt.ok)
			continue
		}
		if ok && (major != tt.major || minor != tt.minor || patch != tt.patch) {
			t.Errorf("ParseSchemaVersion(%q) = %d.%d.%d; want %d.%d.%d",
				tt.value, major, minor, patch, tt.major, tt.minor, tt.patch)
		}
	}
}

func TestSchemaVersion_Parses(t *testing.T) {
	if _, _, _, ok := ParseSchemaVersion(SchemaVersion); !ok {
		t.Errorf("SchemaVersion %q must parse", SchemaVersion)
	}
}

func TestSameMajor(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1.0.0", "1.9.2", true},
		{"1.0.0", "2.0.0", false},
		{"1.0.0", "garbage", false},
		{"", "1.0.0", false},
	}

	for _, tt := range tests {
		if got := SameMajor(tt.a, tt.b); got != tt.want {
			t.Errorf("SameMajor(%q, %q) = %v; want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
