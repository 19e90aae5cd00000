package schema

// FromMap builds the typed view of an already-validated candidate map.
// It performs no checking of its own: callers must only hand it maps the
// validation phases have accepted. Unknown fields are ignored; accepted
// fields are carried over unchanged.
func FromMap(m map[string]any) *Dataset {
	ds := &Dataset{
		Version:       stringAt(m, "version"),
		ExportedAt:    stringAt(m, "exportedAt"),
		Members:       []Member{},
		Relationships: []Relationship{},
	}

	if arr, ok := m["members"].([]any); ok {
		ds.Members = make([]Member, 0, len(arr))
		for _, el := range arr {
			em, ok := el.(map[string]any)
			if !ok {
				continue
			}
			ds.Members = append(ds.Members, memberFromMap(em))
		}
	}

	if arr, ok := m["relationships"].([]any); ok {
		ds.Relationships = make([]Relationship, 0, len(arr))
		for _, el := range arr {
			em, ok := el.(map[string]any)
			if !ok {
				continue
			}
			ds.Relationships = append(ds.Relationships, relationshipFromMap(em))
		}
	}

	return ds
}

func memberFromMap(m map[string]any) Member {
	return Member{
		ID:           stringAt(m, "id"),
		Name:         stringAt(m, "name"),
		DateOfBirth:  stringAt(m, "dateOfBirth"),
		DateOfDeath:  stringAt(m, "dateOfDeath"),
		PlaceOfBirth: stringAt(m, "placeOfBirth"),
		Notes:        stringAt(m, "notes"),
		Photo:        stringAt(m, "photo"),
		CreatedAt:    stringAt(m, "createdAt"),
		UpdatedAt:    stringAt(m, "updatedAt"),
	}
}

func relationshipFromMap(m map[string]any) Relationship {
	return Relationship{
		ID:           stringAt(m, "id"),
		Type:         RelationshipType(stringAt(m, "type")),
		Person1ID:    stringAt(m, "person1Id"),
		Person2ID:    stringAt(m, "person2Id"),
		MarriageDate: stringAt(m, "marriageDate"),
		DivorceDate:  stringAt(m, "divorceDate"),
		CreatedAt:    stringAt(m, "createdAt"),
		UpdatedAt:    stringAt(m, "updatedAt"),
	}
}

func stringAt(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
