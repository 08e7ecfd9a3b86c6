package catalog

// materialTemplate is the fixed record template every new catalog entry is
// cloned from. It carries the catalog-required fields in the array-wrapped
// shape the firmware expects; reconciliation overlays the preset's fields
// and then forces the identity-bearing ones.
var materialTemplate = Material{
	"id":                []any{""},
	"filament_id":       []any{""},
	"from":              []any{"User"},
	"is_custom_defined": []any{"0"},
}

// NewMaterial clones the fixed record template.
func NewMaterial() Material {
	m := make(Material, len(materialTemplate))
	for k, v := range materialTemplate {
		if seq, ok := v.([]any); ok {
			copied := make([]any, len(seq))
			copy(copied, seq)
			m[k] = copied
			continue
		}
		m[k] = v
	}
	return m
}
