// Package schema defines the family-tree dataset wire format.
//
// A Dataset is the complete exportable/importable document: a schema
// version, an export timestamp, the member (person) records and the
// relationships between them. The types here mirror the JSON wire
// format field for field; optional fields are omitted from the output
// when empty.
package schema

// RelationshipType is one of the closed set of edge kinds between two
// members.
type RelationshipType string

const (
	// RelationshipParentChild is direction-sensitive: Person1ID is the
	// parent and Person2ID the child.
	RelationshipParentChild RelationshipType = "parent-child"
	// RelationshipSpouse is an unordered edge between two spouses.
	RelationshipSpouse RelationshipType = "spouse"
	// RelationshipSibling is an unordered edge between two siblings.
	RelationshipSibling RelationshipType = "sibling"
)

// String returns the wire-format value.
func (t RelationshipType) String() string {
	return string(t)
}

// IsValid returns true if this is a recognized relationship type.
func (t RelationshipType) IsValid() bool {
	switch t {
	case RelationshipParentChild, RelationshipSpouse, RelationshipSibling:
		return true
	default:
		return false
	}
}

// RelationshipTypes lists every valid relationship type, in wire order.
func RelationshipTypes() []RelationshipType {
	return []RelationshipType{
		RelationshipParentChild,
		RelationshipSpouse,
		RelationshipSibling,
	}
}

// Dataset is the root document: a versioned, timestamped container of
// members and relationships. Member and relationship order is preserved
// as given; it carries no meaning.
type Dataset struct {
	Version       string         `json:"version"`
	ExportedAt    string         `json:"exportedAt"`
	Members       []Member       `json:"members"`
	Relationships []Relationship `json:"relationships"`
}

// Member is a person record. Id is unique within the dataset's members.
// Absence of DateOfDeath means "presumed living" and is never inferred
// otherwise.
type Member struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	DateOfDeath  string `json:"dateOfDeath,omitempty"`
	PlaceOfBirth string `json:"placeOfBirth,omitempty"`
	Notes        string `json:"notes,omitempty"`
	// Photo is an embedded image encoded as a base64 data URL with an
	// image/* MIME type.
	Photo     string `json:"photo,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Relationship is a typed edge between exactly two members. Id is unique
// within the dataset's relationships; that namespace is disjoint from
// member ids, so a member and a relationship may share a literal id
// value without conflict.
type Relationship struct {
	ID        string           `json:"id"`
	Type      RelationshipType `json:"type"`
	Person1ID string           `json:"person1Id"`
	Person2ID string           `json:"person2Id"`
	// MarriageDate and DivorceDate are meaningful only for spouse
	// relationships but are not rejected on other types.
	MarriageDate string `json:"marriageDate,omitempty"`
	DivorceDate  string `json:"divorceDate,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}
