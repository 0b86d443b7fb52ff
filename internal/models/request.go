package models

import (
	"encoding/json"
	"reflect"
	"sort"
)

// Mistyped lists request members whose JSON type did not fit the field.
// Decoding carries on past them so the caller decides when to report.
type Mistyped []string

// Has reports whether field arrived with the wrong JSON type
func (m Mistyped) Has(field string) bool {
	for _, name := range m {
		if name == field {
			return true
		}
	}
	return false
}

// NotAnObject marks a body that is valid JSON but not an object
const NotAnObject = "(body)"

// decodeMembers unmarshals each named member of data into its target.
// Absent and null members leave the target untouched; a mistyped member
// resets it to its zero value.
func decodeMembers(data []byte, targets map[string]interface{}) Mistyped {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return Mistyped{NotAnObject}
	}

	var mistyped Mistyped
	for name, target := range targets {
		raw, ok := members[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			v := reflect.ValueOf(target).Elem()
			v.Set(reflect.Zero(v.Type()))
			mistyped = append(mistyped, name)
		}
	}
	sort.Strings(mistyped)
	return mistyped
}
