package kinvalidator

// IssueSeverity represents the severity of a validation issue.
type IssueSeverity string

const (
	// SeverityFatal indicates the issue is fatal and validation cannot continue.
	SeverityFatal IssueSeverity = "fatal"
	// SeverityError indicates a validation error that causes the dataset to be invalid.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a potential problem that should be reviewed.
	SeverityWarning IssueSeverity = "warning"
	// SeverityInformation indicates informational feedback.
	SeverityInformation IssueSeverity = "information"
)

// IssueType classifies a validation issue.
type IssueType string

const (
	// IssueTypeStructure indicates the candidate or a nested element is not
	// the expected object/array shape.
	IssueTypeStructure IssueType = "structure"
	// IssueTypeRequired indicates a required field is missing or empty.
	IssueTypeRequired IssueType = "required"
	// IssueTypeValue indicates a field is present but fails its format
	// predicate (bad date, bad version string, bad image encoding,
	// disallowed relationship type).
	IssueTypeValue IssueType = "value"
	// IssueTypeDuplicate indicates a duplicate id within members or within
	// relationships.
	IssueTypeDuplicate IssueType = "duplicate"
	// IssueTypeNotFound indicates a relationship endpoint id does not match
	// any declared member id.
	IssueTypeNotFound IssueType = "not-found"
	// IssueTypeProcessing indicates a processing error.
	IssueTypeProcessing IssueType = "processing"
	// IssueTypeTimeout indicates validation was cancelled or timed out.
	IssueTypeTimeout IssueType = "timeout"
)

// Issue represents a single validation issue.
type Issue struct {
	// Severity of the issue (error, warning, information)
	Severity IssueSeverity `json:"severity"`

	// Code identifying the type of issue
	Code IssueType `json:"code"`

	// Diagnostics contains human-readable details about the issue
	Diagnostics string `json:"diagnostics,omitempty"`

	// Path locates the element in error, e.g. "members[3].dateOfBirth"
	Path string `json:"path,omitempty"`

	// Phase is the validation phase that generated this issue
	Phase string `json:"phase,omitempty"`
}

// IsError returns true if this is an error or fatal issue.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError || i.Severity == SeverityFatal
}

// IsWarning returns true if this is a warning.
func (i Issue) IsWarning() bool {
	return i.Severity == SeverityWarning
}

// String returns a human-readable representation of the issue.
func (i Issue) String() string {
	s := string(i.Severity) + ": " + i.Diagnostics
	if i.Path != "" {
		s += " at " + i.Path
	}
	return s
}

// Message returns the path-qualified message consumed by callers that
// present defects to users: "path: diagnostics", or just the diagnostics
// when the issue has no path.
func (i Issue) Message() string {
	if i.Path == "" {
		return i.Diagnostics
	}
	return i.Path + ": " + i.Diagnostics
}

// IssueBuilder provides a fluent API for building issues.
type IssueBuilder struct {
	issue Issue
}

// NewIssue creates a new IssueBuilder.
func NewIssue(severity IssueSeverity, code IssueType) *IssueBuilder {
	return &IssueBuilder{
		issue: Issue{
			Severity: severity,
			Code:     code,
		},
	}
}

// Error creates an error issue.
func Error(code IssueType) *IssueBuilder {
	return NewIssue(SeverityError, code)
}

// Warning creates a warning issue.
func Warning(code IssueType) *IssueBuilder {
	return NewIssue(SeverityWarning, code)
}

// Info creates an informational issue.
func Info(code IssueType) *IssueBuilder {
	return NewIssue(SeverityInformation, code)
}

// Diagnostics sets the diagnostic message.
func (b *IssueBuilder) Diagnostics(msg string) *IssueBuilder {
	b.issue.Diagnostics = msg
	return b
}

// At sets the element path.
func (b *IssueBuilder) At(path string) *IssueBuilder {
	b.issue.Path = path
	return b
}

// Phase sets the validation phase.
func (b *IssueBuilder) Phase(phase string) *IssueBuilder {
	b.issue.Phase = phase
	return b
}

// Build returns the constructed issue.
func (b *IssueBuilder) Build() Issue {
	return b.issue
}
