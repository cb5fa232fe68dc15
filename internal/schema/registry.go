package schema

import "fmt"

// ResponseTimeSchemaID identifies the built-in response time analyzer schema.
const ResponseTimeSchemaID = "response-time-analyzer"

var responseTimeSchema = TargetSchema{
	ID:   ResponseTimeSchemaID,
	Name: "Response Time Analyzer",
	RequiredFields: []TargetField{
		{ID: "incident_id", DisplayName: "Incident ID", DataType: TypeString, Required: true, Examples: []string{"INC-2024-001234", "240156789"}},
		{ID: "incident_date", DisplayName: "Incident Date", DataType: TypeDate, Required: true, Format: "YYYY-MM-DD", Examples: []string{"2024-05-01"}},
		{ID: "incident_time", DisplayName: "Incident Time", DataType: TypeDate, Required: true, Examples: []string{"2024-05-01T13:45:00"}},
	},
	OptionalFields: []TargetField{
		{ID: "dispatch_time", DisplayName: "Dispatch Time", DataType: TypeDate},
		{ID: "enroute_time", DisplayName: "En Route Time", DataType: TypeDate},
		{ID: "arrival_time", DisplayName: "Arrival Time", DataType: TypeDate},
		{ID: "clear_time", DisplayName: "Clear Time", DataType: TypeDate},
		{ID: "incident_type", DisplayName: "Incident Type", DataType: TypeString, Examples: []string{"FIRE", "EMS", "MVA"}},
		{ID: "priority", DisplayName: "Priority", DataType: TypeString},
		{ID: "responding_unit", DisplayName: "Responding Unit", DataType: TypeString, Examples: []string{"E41", "M12"}},
		{ID: "address", DisplayName: "Address", DataType: TypeString},
		{ID: "city", DisplayName: "City", DataType: TypeString},
		{ID: "state", DisplayName: "State", DataType: TypeString},
		{ID: "zip", DisplayName: "ZIP Code", DataType: TypeString},
		{ID: "latitude", DisplayName: "Latitude", DataType: TypeNumber},
		{ID: "longitude", DisplayName: "Longitude", DataType: TypeNumber},
	},
}

var registry = map[string]*TargetSchema{
	ResponseTimeSchemaID: &responseTimeSchema,
}

// Get returns the target schema registered under the given id.
func Get(id string) (*TargetSchema, error) {
	s, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown target schema: %s", id)
	}
	return s, nil
}

// IDs returns the ids of all registered schemas.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}
