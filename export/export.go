// Package export produces family-tree dataset documents.
//
// The exporter stamps an in-memory member/relationship collection with
// the current schema version and an export timestamp. It performs no
// validation of its inputs: they originate from the application's own
// model, not from untrusted input. For any members and relationships
// that individually satisfy the per-entity rules, the produced document
// passes validation unchanged (the round-trip guarantee).
package export

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	kv "github.com/gokin/validator"
	"github.com/gokin/validator/format"
	"github.com/gokin/validator/schema"
)

// Exporter builds dataset documents. The zero-value-like default uses
// the wall clock; tests inject a fixed clock via NewExporterAt.
type Exporter struct {
	now func() time.Time
}

// NewExporter creates an Exporter using the wall clock.
func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// NewExporterAt creates an Exporter with an injected clock.
func NewExporterAt(now func() time.Time) *Exporter {
	if now == nil {
		now = time.Now
	}
	return &Exporter{now: now}
}

// CreateExport assembles a dataset from the given members and
// relationships, stamped with the current schema version and the
// current instant. Inputs are copied, never retained or mutated; nil
// slices become empty arrays so the wire format always carries
// "members" and "relationships" as arrays.
func (e *Exporter) CreateExport(members []schema.Member, relationships []schema.Relationship) *schema.Dataset {
	return &schema.Dataset{
		Version:       kv.SchemaVersion,
		ExportedAt:    format.FormatDateTime(e.now()),
		Members:       append([]schema.Member{}, members...),
		Relationships: append([]schema.Relationship{}, relationships...),
	}
}

// Marshal renders a dataset as indented wire-format JSON.
func (e *Exporter) Marshal(ds *schema.Dataset) ([]byte, error) {
	return json.MarshalIndent(ds, "", "  ")
}

// CreateExport assembles a dataset using the wall clock.
// See Exporter.CreateExport.
func CreateExport(members []schema.Member, relationships []schema.Relationship) *schema.Dataset {
	return NewExporter().CreateExport(members, relationships)
}

// NewMember creates a person record with a fresh unique id and
// creation/update timestamps. Optional fields start empty; the caller
// fills them in before export.
func NewMember(name string) schema.Member {
	now := format.FormatDateTime(time.Now())
	return schema.Member{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewRelationship creates a typed edge between two member ids with a
// fresh unique id. For parent-child, person1 is the parent and person2
// the child; for spouse and sibling the order carries no meaning.
func NewRelationship(t schema.RelationshipType, person1ID, person2ID string) schema.Relationship {
	now := format.FormatDateTime(time.Now())
	return schema.Relationship{
		ID:        uuid.NewString(),
		Type:      t,
		Person1ID: person1ID,
		Person2ID: person2ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates a member's update timestamp to the current instant.
func Touch(m *schema.Member) {
	m.UpdatedAt = format.FormatDateTime(time.Now())
}
