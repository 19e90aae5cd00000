package phase

import (
	"context"
	"strings"

	kv "github.com/gokin/validator"
	"github.com/gokin/validator/format"
	"github.com/gokin/validator/pipeline"
	"github.com/gokin/validator/pool"
	"github.com/gokin/validator/schema"
)

// RelationshipsPhase validates every relationship record independently:
// the closed type set, both endpoint ids resolving against the
// member-id index built by the members phase, timestamps, and the
// optional marriage/divorce dates. Relationship id uniqueness is
// tracked in its own namespace, so a member and a relationship may
// share a literal id value without conflict.
//
// Running after the members phase makes referential checks independent
// of array ordering: a relationship may legally precede the member it
// references in the source array.
type RelationshipsPhase struct{}

// NewRelationshipsPhase creates a new relationship validation phase.
func NewRelationshipsPhase() *RelationshipsPhase {
	return &RelationshipsPhase{}
}

// Name returns the phase name.
func (p *RelationshipsPhase) Name() string {
	return "relationships"
}

// allowedTypes renders the closed type set for diagnostics.
func allowedTypes() string {
	types := schema.RelationshipTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// Validate performs per-relationship validation.
func (p *RelationshipsPhase) Validate(ctx context.Context, pctx *pipeline.Context) []kv.Issue {
	var issues []kv.Issue

	for j, el := range pctx.Relationships {
		select {
		case <-ctx.Done():
			return issues
		default:
		}

		m, ok := el.(map[string]any)
		if !ok {
			issues = append(issues, ErrorIssue(
				kv.IssueTypeStructure,
				"Relationship must be an object",
				pool.ElementPath("relationships", j),
				p.Name(),
			))
			continue
		}

		issues = append(issues, p.validateRelationship(pctx, m, j)...)

		if id, ok := nonEmptyString(m, "id"); ok {
			if _, claimed := pctx.ClaimRelationshipID(id, j); !claimed {
				issues = append(issues, ErrorIssue(
					kv.IssueTypeDuplicate,
					"Duplicate relationship id '"+id+"'",
					pool.FieldPath("relationships", j, "id"),
					p.Name(),
				))
			}
		}
	}

	return issues
}

// validateRelationship checks a single relationship object's fields.
func (p *RelationshipsPhase) validateRelationship(pctx *pipeline.Context, m map[string]any, j int) []kv.Issue {
	var issues []kv.Issue

	if _, ok := nonEmptyString(m, "id"); !ok {
		issues = append(issues, ErrorIssue(
			kv.IssueTypeRequired,
			"Relationship must have a non-empty id",
			pool.FieldPath("relationships", j, "id"),
			p.Name(),
		))
	}

	if t, ok := nonEmptyString(m, "type"); !ok || !schema.RelationshipType(t).IsValid() {
		issues = append(issues, ErrorIssue(
			kv.IssueTypeValue,
			"Relationship type must be one of: "+allowedTypes(),
			pool.FieldPath("relationships", j, "type"),
			p.Name(),
		))
	}

	for _, field := range []string{"person1Id", "person2Id"} {
		id, ok := nonEmptyString(m, field)
		if !ok {
			issues = append(issues, ErrorIssue(
				kv.IssueTypeRequired,
				"Relationship must have a non-empty "+field,
				pool.FieldPath("relationships", j, field),
				p.Name(),
			))
			continue
		}
		if _, resolved := pctx.ResolveMember(id); !resolved {
			issues = append(issues, ErrorIssue(
				kv.IssueTypeNotFound,
				"Relationship "+field+" references non-existent member '"+id+"'",
				pool.FieldPath("relationships", j, field),
				p.Name(),
			))
		}
	}

	for _, field := range []string{"createdAt", "updatedAt"} {
		if v, ok := nonEmptyString(m, field); !ok || !format.IsDateTime(v) {
			issues = append(issues, ErrorIssue(
				kv.IssueTypeValue,
				"Relationship "+field+" must be a full UTC datetime",
				pool.FieldPath("relationships", j, field),
				p.Name(),
			))
		}
	}

	// marriageDate/divorceDate are checked for format only; they are not
	// rejected on non-spouse relationships.
	for _, field := range []string{"marriageDate", "divorceDate"} {
		if v, present := m[field]; present {
			s, isString := v.(string)
			if !isString || !format.IsDate(s) {
				issues = append(issues, ErrorIssue(
					kv.IssueTypeValue,
					"Relationship "+field+" must be a valid calendar date (YYYY-MM-DD)",
					pool.FieldPath("relationships", j, field),
					p.Name(),
				))
			}
		}
	}

	return issues
}

// RelationshipsPhaseConfig returns the standard configuration for the
// relationships phase. It runs after the members phase so endpoint
// resolution never depends on array ordering, and is skipped when the
// root phase has halted per-element validation.
func RelationshipsPhaseConfig() *pipeline.PhaseConfig {
	return &pipeline.PhaseConfig{
		Phase:          NewRelationshipsPhase(),
		Priority:       pipeline.PriorityLate,
		Required:       true,
		SkipWhenHalted: true,
		Enabled:        true,
	}
}
