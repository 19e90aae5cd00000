package phase

import (
	"context"
	"testing"

	kv "github.com/gokin/validator"
	"github.com/gokin/validator/pipeline"
)

func validRelationship(id string) map[string]any {
	return map[string]any{
		"id":        id,
		"type":      "spouse",
		"person1Id": "m1",
		"person2Id": "m2",
		"createdAt": "2024-01-01T00:00:00.000Z",
		"updatedAt": "2024-01-01T00:00:00.000Z",
	}
}

func newRelationshipsContext(relationships ...any) *pipeline.Context {
	pctx := pipeline.NewContext()
	pctx.Relationships = relationships
	pctx.Result = kv.NewResult()
	pctx.ClaimMemberID("m1", 0)
	pctx.ClaimMemberID("m2", 1)
	return pctx
}

func TestRelationshipsPhase_Valid(t *testing.T) {
	r := validRelationship("r1")
	r["marriageDate"] = "1990-06-01"
	r["divorceDate"] = "2001-03-15"

	issues := NewRelationshipsPhase().Validate(context.Background(), newRelationshipsContext(r))
	if len(issues) != 0 {
		t.Errorf("got %d issues on valid relationship; want 0: %v", len(issues), issues)
	}
}

func TestRelationshipsPhase_NonObjectElement(t *testing.T) {
	issues := NewRelationshipsPhase().Validate(context.Background(),
		newRelationshipsContext(42.0))

	if len(issues) != 1 {
		t.Fatalf("got %d issues; want 1: %v", len(issues), issues)
	}
	if issues[0].Code != kv.IssueTypeStructure || issues[0].Path != "relationships[0]" {
		t.Errorf("issue = {%s at %q}", issues[0].Code, issues[0].Path)
	}
}

func TestRelationshipsPhase_ClosedTypeSet(t *testing.T) {
	for _, valid := range []string{"parent-child", "spouse", "sibling"} {
		r := validRelationship("r1")
		r["type"] = valid

		issues := NewRelationshipsPhase().Validate(context.Background(), newRelationshipsContext(r))
		if len(issues) != 0 {
			t.Errorf("type %q rejected: %v", valid, issues)
		}
	}

	for _, invalid := range []string{"friend", "SPOUSE", "parent_child", ""} {
		r := validRelationship("r1")
		r["type"] = invalid

		issues := NewRelationshipsPhase().Validate(context.Background(), newRelationshipsContext(r))
		if len(issues) != 1 {
			t.Fatalf("type %q: got %d issues; want 1: %v", invalid, len(issues), issues)
		}
		if issues[0].Code != kv.IssueTypeValue || issues[0].Path != "relationships[0].type" {
			t.Errorf("type %q: issue = {%s at %q}", invalid, issues[0].Code, issues[0].Path)
		}
		if issues[0].Diagnostics != "Relationship type must be one of: parent-child, spouse, sibling" {
			t.Errorf("Diagnostics = %q", issues[0].Diagnostics)
		}
	}
}

func TestRelationshipsPhase_DanglingEndpoint(t *testing.T) {
	r := validRelationship("r1")
	r["person2Id"] = "b"

	issues := NewRelationshipsPhase().Validate(context.Background(), newRelationshipsContext(r))
	if len(issues) != 1 {
		t.Fatalf("got %d issues; want 1: %v", len(issues), issues)
	}
	if issues[0].Code != kv.IssueTypeNotFound || issues[0].Path != "relationships[0].person2Id" {
		t.Errorf("issue = {%s at %q}", issues[0].Code, issues[0].Path)
	}
	if issues[0].Diagnostics != "Relationship person2Id references non-existent member 'b'" {
		t.Errorf("Diagnostics = %q", issues[0].Diagnostics)
	}
}

func TestRelationshipsPhase_MissingEndpointSkipsResolution(t *testing.T) {
	r := validRelationship("r1")
	delete(r, "person1Id")

	issues := NewRelationshipsPhase().Validate(context.Background(), newRelationshipsContext(r))
	if len(issues) != 1 {
		t.Fatalf("got %d issues; want 1 (required only, no not-found): %v", len(issues), issues)
	}
	if issues[0].Code != kv.IssueTypeRequired || issues[0].Path != "relationships[0].person1Id" {
		t.Errorf("issue = {%s at %q}", issues[0].Code, issues[0].Path)
	}
}

func TestRelationshipsPhase_SelfReference(t *testing.T) {
	r := validRelationship("r1")
	r["person2Id"] = "m1"

	issues := NewRelationshipsPhase().Validate(context.Background(), newRelationshipsContext(r))
	if len(issues) != 0 {
		t.Errorf("self-referencing endpoints both resolving should pass: %v", issues)
	}
}

func TestRelationshipsPhase_DuplicateID(t *testing.T) {
	issues := NewRelationshipsPhase().Validate(context.Background(),
		newRelationshipsContext(validRelationship("r1"), validRelationship("r1")))

	if len(issues) != 1 {
		t.Fatalf("got %d issues; want 1: %v", len(issues), issues)
	}
	if issues[0].Code != kv.IssueTypeDuplicate || issues[0].Path != "relationships[1].id" {
		t.Errorf("issue = {%s at %q}", issues[0].Code, issues[0].Path)
	}
}

func TestRelationshipsPhase_IDSharedWithMemberIsNotDuplicate(t *testing.T) {
	// "m1" is already claimed as a member id; relationship ids live in
	// their own namespace.
	issues := NewRelationshipsPhase().Validate(context.Background(),
		newRelationshipsContext(validRelationship("m1")))

	if len(issues) != 0 {
		t.Errorf("relationship id matching a member id should not be a defect: %v", issues)
	}
}

func TestRelationshipsPhase_DateDefects(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(map[string]any)
		wantPath string
	}{
		{"bad createdAt", func(r map[string]any) { r["createdAt"] = "2024-01-01" }, "relationships[0].createdAt"},
		{"missing updatedAt", func(r map[string]any) { delete(r, "updatedAt") }, "relationships[0].updatedAt"},
		{"bad marriageDate", func(r map[string]any) { r["marriageDate"] = "June 1990" }, "relationships[0].marriageDate"},
		{"impossible divorceDate", func(r map[string]any) { r["divorceDate"] = "2001-02-30" }, "relationships[0].divorceDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRelationship("r1")
			tt.mutate(r)

			issues := NewRelationshipsPhase().Validate(context.Background(), newRelationshipsContext(r))
			if len(issues) != 1 {
				t.Fatalf("got %d issues; want 1: %v", len(issues), issues)
			}
			if issues[0].Code != kv.IssueTypeValue || issues[0].Path != tt.wantPath {
				t.Errorf("issue = {%s at %q}; want {value at %q}",
					issues[0].Code, issues[0].Path, tt.wantPath)
			}
		})
	}
}

func TestRelationshipsPhase_MarriageDateAllowedOnAnyType(t *testing.T) {
	r := validRelationship("r1")
	r["type"] = "sibling"
	r["marriageDate"] = "1990-06-01"

	issues := NewRelationshipsPhase().Validate(context.Background(), newRelationshipsContext(r))
	if len(issues) != 0 {
		t.Errorf("marriageDate on a non-spouse relationship should not be rejected: %v", issues)
	}
}

func TestRelationshipsPhaseConfig(t *testing.T) {
	cfg := RelationshipsPhaseConfig()
	if cfg.Priority != pipeline.PriorityLate {
		t.Errorf("Priority = %d; want PriorityLate", cfg.Priority)
	}
	if !cfg.SkipWhenHalted {
		t.Error("relationships phase must be skipped when halted")
	}
}
