package schema

import (
	"encoding/json"
	"testing"
)

func TestRelationshipType_IsValid(t *testing.T) {
	tests := []struct {
		value RelationshipType
		want  bool
	}{
		{RelationshipParentChild, true},
		{RelationshipSpouse, true},
		{RelationshipSibling, true},
		{RelationshipType("friend"), false},
		{RelationshipType("PARENT-CHILD"), false},
		{RelationshipType(""), false},
	}

	for _, tt := range tests {
		if got := tt.value.IsValid(); got != tt.want {
			t.Errorf("RelationshipType(%q).IsValid() = %v; want %v", tt.value, got, tt.want)
		}
	}
}

func TestRelationshipTypes_Closed(t *testing.T) {
	types := RelationshipTypes()
	if len(types) != 3 {
		t.Fatalf("len(RelationshipTypes()) = %d; want 3", len(types))
	}
	for _, rt := range types {
		if !rt.IsValid() {
			t.Errorf("RelationshipTypes() contains invalid type %q", rt)
		}
	}
}

func TestMember_MarshalOmitsEmptyOptionals(t *testing.T) {
	m := Member{
		ID:        "m1",
		Name:      "Ada",
		CreatedAt: "2024-01-01T00:00:00.000Z",
		UpdatedAt: "2024-01-01T00:00:00.000Z",
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, absent := range []string{"dateOfBirth", "dateOfDeath", "placeOfBirth", "notes", "photo"} {
		if _, ok := fields[absent]; ok {
			t.Errorf("marshaled member should omit empty %q", absent)
		}
	}
	for _, present := range []string{"id", "name", "createdAt", "updatedAt"} {
		if _, ok := fields[present]; !ok {
			t.Errorf("marshaled member missing required %q", present)
		}
	}
}

func TestDataset_MarshalKeepsEmptyArrays(t *testing.T) {
	ds := Dataset{
		Version:       "1.0.0",
		ExportedAt:    "2024-01-01T00:00:00.000Z",
		Members:       []Member{},
		Relationships: []Relationship{},
	}

	data, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if _, ok := fields["members"].([]any); !ok {
		t.Errorf("members should marshal as an array, got %T", fields["members"])
	}
	if _, ok := fields["relationships"].([]any); !ok {
		t.Errorf("relationships should marshal as an array, got %T", fields["relationships"])
	}
}
