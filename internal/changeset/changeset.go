// Package changeset tracks proposed changes to an entity and validates
// them without touching storage. Services build a changeset from the
// current entity state and caller-supplied attributes, run validations,
// and either apply the changes or hand the rejected state back to the
// caller for re-rendering.
package changeset

import (
	"fmt"
	"reflect"
	"strings"
)

// Changeset holds the entity snapshot, the proposed changes that differ
// from it, and any validation errors keyed by field.
type Changeset struct {
	Data    map[string]interface{} `json:"data"`
	Changes map[string]interface{} `json:"changes"`
	Errors  map[string][]string    `json:"errors,omitempty"`
}

// Cast builds a changeset from an entity snapshot and proposed attributes.
// Only permitted fields are considered; attributes equal to the current
// value are not recorded as changes. Unknown fields are dropped, so
// callers cannot smuggle values into non-permitted columns.
func Cast(data map[string]interface{}, attrs map[string]interface{}, permitted ...string) *Changeset {
	cs := &Changeset{
		Data:    data,
		Changes: make(map[string]interface{}),
		Errors:  make(map[string][]string),
	}
	if cs.Data == nil {
		cs.Data = make(map[string]interface{})
	}

	for _, field := range permitted {
		value, ok := attrs[field]
		if !ok {
			continue
		}
		if reflect.DeepEqual(value, cs.Data[field]) {
			continue
		}
		cs.Changes[field] = value
	}

	return cs
}

// Valid reports whether the changeset has no validation errors
func (c *Changeset) Valid() bool {
	return len(c.Errors) == 0
}

// AddError records a rule violation for a field
func (c *Changeset) AddError(field, rule string) *Changeset {
	c.Errors[field] = append(c.Errors[field], rule)
	return c
}

// GetChange returns the proposed value for a field, if one was cast
func (c *Changeset) GetChange(field string) (interface{}, bool) {
	v, ok := c.Changes[field]
	return v, ok
}

// get returns the effective value of a field: the proposed change if
// present, otherwise the current entity value.
func (c *Changeset) get(field string) interface{} {
	if v, ok := c.Changes[field]; ok {
		return v
	}
	return c.Data[field]
}

// ValidateRequired adds an error for each field whose effective value is
// missing or blank
func (c *Changeset) ValidateRequired(fields ...string) *Changeset {
	for _, field := range fields {
		if isBlank(c.get(field)) {
			c.AddError(field, "is required")
		}
	}
	return c
}

// ValidateLength adds an error when the effective string value of a field
// exceeds max characters
func (c *Changeset) ValidateLength(field string, max int) *Changeset {
	s, ok := c.get(field).(string)
	if !ok {
		return c
	}
	if len(s) > max {
		c.AddError(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return c
}

func isBlank(v interface{}) bool {
	if v == nil {
		return true
	}
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value) == ""
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Map:
			return rv.Len() == 0
		case reflect.Ptr:
			return rv.IsNil()
		}
		return false
	}
}
