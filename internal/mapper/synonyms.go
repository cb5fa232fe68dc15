package mapper

// fieldVariations maps each target field id to alternate source column names
// observed across CAD vendor exports. Comparison is against Normalize() of
// each entry; the first hit wins.
var fieldVariations = map[string][]string{
	"incident_id": {
		"incident number", "incident_num", "inc_no", "call number", "call_no",
		"event number", "event_id", "cad number", "cad_id", "run number",
		"report number", "master incident number",
	},
	"incident_date": {
		"call date", "alarm date", "date", "dispatch date", "event date",
		"incident dt", "response date", "reported date",
	},
	"incident_time": {
		"call time", "alarm time", "call received", "call_received_time",
		"time of call", "reported time", "alarm datetime", "call datetime",
		"received datetime",
	},
	"dispatch_time": {
		"dispatched", "dispatch", "time dispatched", "unit dispatched",
		"dispatch datetime", "dsp time",
	},
	"enroute_time": {
		"enroute", "en route", "responding", "time enroute", "unit enroute",
		"turnout time", "enroute datetime",
	},
	"arrival_time": {
		"arrived", "arrival", "on scene", "onscene", "time arrived",
		"at scene", "arrive datetime", "first arrived",
	},
	"clear_time": {
		"cleared", "clear", "available", "time cleared", "in service",
		"last unit cleared", "clear datetime",
	},
	"incident_type": {
		"call type", "nature", "problem", "event type", "type code",
		"nature code", "description", "call reason",
	},
	"priority": {
		"call priority", "response priority", "pri", "priority code",
	},
	"responding_unit": {
		"unit", "unit id", "apparatus", "primary unit", "first due",
		"vehicle", "resource", "unit name",
	},
	"address": {
		"street address", "location", "full address", "incident address",
		"address 1", "street", "location address", "scene address",
	},
	"city": {
		"municipality", "town", "incident city", "location city",
	},
	"state": {
		"st", "province", "incident state", "location state",
	},
	"zip": {
		"zipcode", "zip code", "postal code", "postal", "incident zip",
	},
	"latitude": {
		"lat", "y", "y coord", "y_coordinate", "gps lat", "point_y",
	},
	"longitude": {
		"lon", "lng", "long", "x", "x coord", "x_coordinate", "gps lon",
		"point_x",
	},
}

// variationsFor returns the known alternate column names for a target id.
func variationsFor(targetID string) []string {
	return fieldVariations[targetID]
}
