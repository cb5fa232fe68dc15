package mapper

import "github.com/AZJJH2025/fire-ems-tools-sub010/internal/schema"

// MigrateLegacyMapping rewrites a mapping whose targetField holds a human
// display name into the schema's stable id. Older saved configurations
// stored labels; everything downstream compares ids only, so this runs once
// at load time. Mappings already carrying a valid id pass through unchanged.
func MigrateLegacyMapping(m FieldMapping, s *schema.TargetSchema) FieldMapping {
	if _, ok := s.FieldByID(m.TargetField); ok {
		return m
	}
	if f, ok := s.FieldByDisplayName(m.TargetField); ok {
		m.TargetField = f.ID
	}
	return m
}

// MigrateLegacyMappings applies MigrateLegacyMapping to a whole set.
func MigrateLegacyMappings(set MappingSet, s *schema.TargetSchema) MappingSet {
	out := make(MappingSet, len(set))
	for i, m := range set {
		out[i] = MigrateLegacyMapping(m, s)
	}
	return out
}
