package settings

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const updateSchema = `{
	"type": "object",
	"additionalProperties": false,
	"minProperties": 1,
	"properties": {
		"logging_enable": {"type": "string", "enum": ["0", "1"]},
		"prune_logs": {"type": "string", "enum": ["0", "1"]},
		"statuses_to_log": {
			"type": "array",
			"items": {"type": "string", "minLength": 1}
		},
		"triggers_to_log": {
			"type": "array",
			"items": {
				"oneOf": [
					{"type": "string", "pattern": "^[0-9]{1,10}$"},
					{"type": "integer", "minimum": 0, "maximum": 2147483647}
				]
			}
		},
		"logs_how_old": {
			"type": "string",
			"pattern": "^([0-9]{1,9}\\s+(second|minute|hour|day|week|month|year)s?)?$"
		}
	}
}`

var updateSchemaLoader = gojsonschema.NewStringLoader(updateSchema)

func validateUpdate(raw []byte) error {
	result, err := gojsonschema.Validate(updateSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return ValidationError{msg: fmt.Sprintf("settings document is not valid JSON: %v", err)}
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return ValidationError{msg: "settings validation failed", Details: details}
}
