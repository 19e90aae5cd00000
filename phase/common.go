// Package phase implements the dataset validation phases: root field
// checks, per-member checks and per-relationship checks.
package phase

import (
	kv "github.com/gokin/validator"
)

// BaseIssue creates a base issue with common fields set.
func BaseIssue(severity kv.IssueSeverity, code kv.IssueType, diagnostics, path, phase string) kv.Issue {
	return kv.Issue{
		Severity:    severity,
		Code:        code,
		Diagnostics: diagnostics,
		Path:        path,
		Phase:       phase,
	}
}

// ErrorIssue creates an error issue.
func ErrorIssue(code kv.IssueType, diagnostics, path, phase string) kv.Issue {
	return BaseIssue(kv.SeverityError, code, diagnostics, path, phase)
}

// WarningIssue creates a warning issue.
func WarningIssue(code kv.IssueType, diagnostics, path, phase string) kv.Issue {
	return BaseIssue(kv.SeverityWarning, code, diagnostics, path, phase)
}

// stringField returns the value of a string field. ok is false when the
// field is absent or not a string.
func stringField(m map[string]any, key string) (string, bool) {
	v, present := m[key]
	if !present {
		return "", false
	}
	s, isString := v.(string)
	return s, isString
}

// nonEmptyString returns the field value and whether it is a non-empty
// string.
func nonEmptyString(m map[string]any, key string) (string, bool) {
	s, ok := stringField(m, key)
	return s, ok && s != ""
}
