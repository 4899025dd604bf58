package domain

// Material is one item in the planning catalog.
type Material struct {
	ID   string
	Name string
	Type MaterialType
}

// MaterialName returns the display name for a material ID, falling back to
// the raw ID when the catalog has no entry for it.
func MaterialName(materials map[string]Material, id string) string {
	if m, ok := materials[id]; ok {
		return m.Name
	}
	return id
}

// MaterialIndex builds an ID-keyed lookup from a material list.
func MaterialIndex(materials []Material) map[string]Material {
	idx := make(map[string]Material, len(materials))
	for _, m := range materials {
		idx[m.ID] = m
	}
	return idx
}
