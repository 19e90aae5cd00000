package kinvalidator

import (
	"strconv"
	"strings"
)

// SchemaVersion is the dataset schema version stamped on every export.
// Exported documents carry this value in their "version" field; the
// validator only enforces the syntactic MAJOR.MINOR.PATCH shape, so
// older exports remain importable.
const SchemaVersion = "1.0.0"

// ParseSchemaVersion splits a MAJOR.MINOR.PATCH string into its numeric
// components. Returns ok=false if the string is not exactly three
// dot-separated non-negative integers (pre-release and build suffixes
// are not supported).
func ParseSchemaVersion(v string) (major, minor, patch int, ok bool) {
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		if p == "" {
			return 0, 0, 0, false
		}
		// Digits only: strconv.Atoi would also accept a leading sign.
		for _, c := range p {
			if c < '0' || c > '9' {
				return 0, 0, 0, false
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], true
}

// SameMajor reports whether two schema version strings share a major
// version. Both must parse; otherwise false.
func SameMajor(a, b string) bool {
	am, _, _, aok := ParseSchemaVersion(a)
	bm, _, _, bok := ParseSchemaVersion(b)
	return aok && bok && am == bm
}
