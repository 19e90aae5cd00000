package phase

import (
	"context"

	kv "github.com/gokin/validator"
	"github.com/gokin/validator/format"
	"github.com/gokin/validator/pipeline"
)

// RootPhase validates the dataset's root fields: the schema version
// string, the export timestamp, and the presence and shape of the
// members and relationships arrays.
//
// When either array is absent or not an array the phase halts the
// pipeline's per-element phases after appending the corresponding
// errors: there is nothing safe to iterate. All other defects
// accumulate.
type RootPhase struct{}

// NewRootPhase creates a new root validation phase.
func NewRootPhase() *RootPhase {
	return &RootPhase{}
}

// Name returns the phase name.
func (p *RootPhase) Name() string {
	return "root"
}

// Validate performs the root field validation.
func (p *RootPhase) Validate(ctx context.Context, pctx *pipeline.Context) []kv.Issue {
	var issues []kv.Issue

	select {
	case <-ctx.Done():
		return issues
	default:
	}

	// Reads from a nil map are safe; a nil document reports the same
	// missing-field errors as an empty one.
	doc := pctx.Document

	if v, ok := nonEmptyString(doc, "version"); !ok {
		issues = append(issues, ErrorIssue(
			kv.IssueTypeRequired,
			"Dataset must have a version string",
			"version",
			p.Name(),
		))
	} else if !format.IsSemVer(v) {
		issues = append(issues, ErrorIssue(
			kv.IssueTypeValue,
			"Version must be of the form MAJOR.MINOR.PATCH, got '"+v+"'",
			"version",
			p.Name(),
		))
	}

	if v, ok := nonEmptyString(doc, "exportedAt"); !ok {
		issues = append(issues, ErrorIssue(
			kv.IssueTypeRequired,
			"Dataset must have an exportedAt timestamp",
			"exportedAt",
			p.Name(),
		))
	} else if !format.IsDateTime(v) {
		issues = append(issues, ErrorIssue(
			kv.IssueTypeValue,
			"exportedAt must be a full UTC datetime (YYYY-MM-DDTHH:mm:ss[.sss]Z), got '"+v+"'",
			"exportedAt",
			p.Name(),
		))
	}

	members, ok := doc["members"].([]any)
	if !ok {
		issues = append(issues, ErrorIssue(
			kv.IssueTypeStructure,
			"Dataset must have a members array",
			"members",
			p.Name(),
		))
		pctx.Halt()
	} else {
		pctx.Members = members
	}

	relationships, ok := doc["relationships"].([]any)
	if !ok {
		issues = append(issues, ErrorIssue(
			kv.IssueTypeStructure,
			"Dataset must have a relationships array",
			"relationships",
			p.Name(),
		))
		pctx.Halt()
	} else {
		pctx.Relationships = relationships
	}

	return issues
}

// RootPhaseConfig returns the standard configuration for the root phase.
func RootPhaseConfig() *pipeline.PhaseConfig {
	return &pipeline.PhaseConfig{
		Phase:    NewRootPhase(),
		Priority: pipeline.PriorityFirst,
		Required: true,
		Enabled:  true,
	}
}
