package phase

import (
	"context"

	kv "github.com/gokin/validator"
	"github.com/gokin/validator/format"
	"github.com/gokin/validator/pipeline"
	"github.com/gokin/validator/pool"
)

// MembersPhase validates every member record independently and builds
// the member-id index used by the relationships phase. Each defect is
// reported at a path like "members[3].dateOfBirth"; a defective member
// never stops validation of the others.
type MembersPhase struct{}

// NewMembersPhase creates a new member validation phase.
func NewMembersPhase() *MembersPhase {
	return &MembersPhase{}
}

// Name returns the phase name.
func (p *MembersPhase) Name() string {
	return "members"
}

// Validate performs per-member validation.
func (p *MembersPhase) Validate(ctx context.Context, pctx *pipeline.Context) []kv.Issue {
	var issues []kv.Issue

	for i, el := range pctx.Members {
		select {
		case <-ctx.Done():
			return issues
		default:
		}

		m, ok := el.(map[string]any)
		if !ok {
			issues = append(issues, ErrorIssue(
				kv.IssueTypeStructure,
				"Member must be an object",
				pool.ElementPath("members", i),
				p.Name(),
			))
			continue
		}

		issues = append(issues, p.validateMember(m, i)...)

		// First occurrence wins: a later duplicate never overwrites the
		// earlier claim, so relationship endpoints resolve against the
		// first declaration.
		if id, ok := nonEmptyString(m, "id"); ok {
			if _, claimed := pctx.ClaimMemberID(id, i); !claimed {
				issues = append(issues, ErrorIssue(
					kv.IssueTypeDuplicate,
					"Duplicate member id '"+id+"'",
					pool.FieldPath("members", i, "id"),
					p.Name(),
				))
			}
		}
	}

	return issues
}

// validateMember checks a single member object's fields.
func (p *MembersPhase) validateMember(m map[string]any, i int) []kv.Issue {
	var issues []kv.Issue

	if _, ok := nonEmptyString(m, "id"); !ok {
		issues = append(issues, ErrorIssue(
			kv.IssueTypeRequired,
			"Member must have a non-empty id",
			pool.FieldPath("members", i, "id"),
			p.Name(),
		))
	}

	if _, ok := nonEmptyString(m, "name"); !ok {
		issues = append(issues, ErrorIssue(
			kv.IssueTypeRequired,
			"Member must have a non-empty name",
			pool.FieldPath("members", i, "name"),
			p.Name(),
		))
	}

	for _, field := range []string{"createdAt", "updatedAt"} {
		if v, ok := nonEmptyString(m, field); !ok || !format.IsDateTime(v) {
			issues = append(issues, ErrorIssue(
				kv.IssueTypeValue,
				"Member "+field+" must be a full UTC datetime",
				pool.FieldPath("members", i, field),
				p.Name(),
			))
		}
	}

	for _, field := range []string{"dateOfBirth", "dateOfDeath"} {
		if v, present := m[field]; present {
			s, isString := v.(string)
			if !isString || !format.IsDate(s) {
				issues = append(issues, ErrorIssue(
					kv.IssueTypeValue,
					"Member "+field+" must be a valid calendar date (YYYY-MM-DD)",
					pool.FieldPath("members", i, field),
					p.Name(),
				))
			}
		}
	}

	for _, field := range []string{"placeOfBirth", "notes"} {
		if v, present := m[field]; present {
			if _, isString := v.(string); !isString {
				issues = append(issues, ErrorIssue(
					kv.IssueTypeValue,
					"Member "+field+" must be a string",
					pool.FieldPath("members", i, field),
					p.Name(),
				))
			}
		}
	}

	if v, present := m["photo"]; present {
		s, isString := v.(string)
		if !isString || !format.IsImageDataURL(s) {
			issues = append(issues, ErrorIssue(
				kv.IssueTypeValue,
				"Member photo must be a base64 image data URL (data:image/...;base64,...)",
				pool.FieldPath("members", i, "photo"),
				p.Name(),
			))
		}
	}

	return issues
}

// MembersPhaseConfig returns the standard configuration for the members
// phase. It is skipped when the root phase has halted per-element
// validation.
func MembersPhaseConfig() *pipeline.PhaseConfig {
	return &pipeline.PhaseConfig{
		Phase:          NewMembersPhase(),
		Priority:       pipeline.PriorityEarly,
		Required:       true,
		SkipWhenHalted: true,
		Enabled:        true,
	}
}
