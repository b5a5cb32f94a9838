package handlers

import (
	"encoding/json"
	"net/http"
)

type object = map[string]interface{}

func ref(name string) object {
	return object{"$ref": "#/components/schemas/" + name}
}

func jsonBody(schema object) object {
	return object{"application/json": object{"schema": schema}}
}

func jsonResponse(description string, schema object) object {
	return object{"description": description, "content": jsonBody(schema)}
}

var errorResponses = object{
	"400": jsonResponse("Malformed request or failed field constraints", ref("Error")),
	"422": jsonResponse("Input rejected by the engine; kind names the rule", ref("Error")),
}

// openAPISpec is the OpenAPI 3.0 document for the drying engine API
var openAPISpec = object{
	"openapi": "3.0.0",
	"info": object{
		"title":       "Drying Engine API",
		"description": "Psychrometric assessment, water-removal targets and equipment sizing for water-damage restoration",
		"version":     "1.0.0",
	},
	"servers": []map[string]string{
		{"url": "http://localhost:8080", "description": "Local development server"},
	},
	"paths": object{
		"/api/assessments": object{
			"post": object{
				"summary":     "Run a drying assessment",
				"description": "Aggregates the scope, computes removal and air-mover targets, matches the equipment loadout and estimates cost",
				"requestBody": object{"required": true, "content": jsonBody(ref("AssessmentInput"))},
				"responses": mergeResponses(object{
					"201": jsonResponse("Assessment completed", ref("Assessment")),
				}),
			},
		},
		"/api/psychrometrics": object{
			"post": object{
				"summary":     "Classify an ambient reading",
				"requestBody": object{"required": true, "content": jsonBody(ref("Ambient"))},
				"responses": mergeResponses(object{
					"200": jsonResponse("Reading classified", ref("PsychrometricReading")),
				}),
			},
		},
		"/api/equipment": object{
			"get": object{
				"summary":   "List the active equipment catalog",
				"responses": object{"200": jsonResponse("Active catalog", ref("Catalog"))},
			},
		},
		"/api/catalog/reload": object{
			"post": object{
				"summary": "Reload the equipment catalog from its configured source",
				"responses": object{
					"200": jsonResponse("Catalog reloaded", ref("Catalog")),
					"503": jsonResponse("Source unavailable; previous catalog kept", ref("Error")),
				},
			},
		},
		"/api/config": object{
			"get": object{
				"summary":   "Show the engine constants in use",
				"responses": object{"200": jsonResponse("Engine configuration", object{"type": "object"})},
			},
		},
		"/health": object{
			"get": object{
				"summary": "Health check",
				"responses": object{
					"200": jsonResponse("API is healthy", object{"type": "object"}),
					"503": jsonResponse("A dependency is unhealthy", object{"type": "object"}),
				},
			},
		},
		"/metrics": object{
			"get": object{
				"summary": "Prometheus metrics",
				"responses": object{
					"200": object{
						"description": "Prometheus metrics in text format",
						"content":     object{"text/plain": object{"schema": object{"type": "string"}}},
					},
				},
			},
		},
	},
	"components": object{
		"schemas": object{
			"ScopeArea": object{
				"type":     "object",
				"required": []string{"name", "length", "width", "height", "wet_percentage"},
				"properties": object{
					"name":           object{"type": "string"},
					"length":         object{"type": "number", "description": "metres"},
					"width":          object{"type": "number", "description": "metres"},
					"height":         object{"type": "number", "description": "metres"},
					"wet_percentage": object{"type": "number", "minimum": 0, "maximum": 100},
				},
			},
			"Ambient": object{
				"type":     "object",
				"required": []string{"temperature_celsius", "relative_humidity_percent", "system_type"},
				"properties": object{
					"temperature_celsius":       object{"type": "number"},
					"relative_humidity_percent": object{"type": "number", "minimum": 0, "maximum": 100},
					"system_type":               object{"type": "string", "enum": []string{"OPEN", "CLOSED"}},
				},
			},
			"EquipmentSelection": object{
				"type":     "object",
				"required": []string{"equipment_id", "quantity", "daily_rate"},
				"properties": object{
					"equipment_id": object{"type": "string"},
					"quantity":     object{"type": "integer", "minimum": 0},
					"daily_rate":   object{"type": "string", "description": "decimal amount, numbers are also accepted", "example": "45.00"},
				},
			},
			"AssessmentInput": object{
				"type":     "object",
				"required": []string{"areas", "water_class", "ambient", "selections", "duration_days"},
				"properties": object{
					"areas":         object{"type": "array", "items": ref("ScopeArea")},
					"water_class":   object{"type": "integer", "minimum": 1, "maximum": 4},
					"ambient":       ref("Ambient"),
					"selections":    object{"type": "array", "items": ref("EquipmentSelection")},
					"duration_days": object{"type": "integer", "minimum": 1},
				},
			},
			"PsychrometricReading": object{
				"type": "object",
				"properties": object{
					"temperature_celsius":       object{"type": "number"},
					"relative_humidity_percent": object{"type": "number"},
					"system_type":               object{"type": "string"},
					"drying_index":              object{"type": "number"},
					"status":                    object{"type": "string", "enum": []string{"POOR", "FAIR", "GOOD", "EXCELLENT"}},
				},
			},
			"Assessment": object{
				"type": "object",
				"properties": object{
					"id":         object{"type": "string", "format": "uuid"},
					"created_at": object{"type": "string", "format": "date-time"},
					"result": object{
						"type": "object",
						"properties": object{
							"total_volume_m3":                     object{"type": "number"},
							"total_affected_area_m2":              object{"type": "number"},
							"water_class":                         object{"type": "integer"},
							"water_removal_target_litres_per_day": object{"type": "integer"},
							"min_air_movers_required":             object{"type": "integer"},
							"achieved_capacity_litres_per_day":    object{"type": "number"},
							"raw_airflow":                         object{"type": "number"},
							"achieved_air_mover_units":            object{"type": "integer"},
							"total_daily_cost":                    object{"type": "string"},
							"duration_days":                       object{"type": "integer"},
							"total_cost":                          object{"type": "string"},
							"total_amps":                          object{"type": "number"},
							"circuits_required":                   object{"type": "integer"},
							"dehumidification_sufficient":         object{"type": "boolean"},
							"air_movement_sufficient":             object{"type": "boolean"},
							"capacity_sufficient":                 object{"type": "boolean"},
							"severity":                            object{"type": "string", "enum": []string{"OK", "ADVISORY", "CRITICAL"}},
							"warnings":                            object{"type": "array", "items": object{"type": "string"}},
							"line_items":                          object{"type": "array", "items": object{"type": "object"}},
							"psychrometrics":                      ref("PsychrometricReading"),
						},
					},
				},
			},
			"Catalog": object{
				"type": "object",
				"properties": object{
					"source":    object{"type": "string"},
					"loaded_at": object{"type": "string", "format": "date-time"},
					"equipment": object{"type": "array", "items": object{"type": "object"}},
				},
			},
			"Error": object{
				"type": "object",
				"properties": object{
					"error":   object{"type": "string"},
					"message": object{"type": "string"},
					"code":    object{"type": "integer"},
					"kind":    object{"type": "string"},
					"details": object{"type": "array", "items": object{"type": "object"}},
				},
			},
		},
	},
}

func mergeResponses(success object) object {
	out := object{}
	for code, resp := range errorResponses {
		out[code] = resp
	}
	for code, resp := range success {
		out[code] = resp
	}
	return out
}

// OpenAPISpec serves the OpenAPI document
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(openAPISpec)
}
