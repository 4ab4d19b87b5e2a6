package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind mirrors the JSON value classes request payloads are checked against.
type Kind int

const (
	String Kind = iota
	Number
	Array
)

// Field declares one required payload key. SkipEmpty exempts the field
// from the empty-string check (array fields: an empty list is a later,
// separate structural error, not an "empty value").
type Field struct {
	Name      string
	Kind      Kind
	SkipEmpty bool
}

// Schema is the ordered set of required keys for one entity payload.
type Schema []Field

// Classification buckets each failing field into exactly one class.
// All fields are scanned before any error is raised; missing-key
// failures mask empty/type failures only at message-selection time.
type Classification struct {
	Missing   []string
	Empty     []string
	WrongType []string
}

func (c Classification) OK() bool {
	return len(c.Missing) == 0 && len(c.Empty) == 0 && len(c.WrongType) == 0
}

// Classify runs the presence/empty/type pass over a decoded JSON object.
func (s Schema) Classify(body map[string]any) Classification {
	var c Classification
	for _, f := range s {
		v, present := body[f.Name]
		switch {
		case !present:
			c.Missing = append(c.Missing, f.Name)
		case v == "":
			if f.SkipEmpty {
				continue
			}
			c.Empty = append(c.Empty, f.Name)
		case !matches(f.Kind, v):
			c.WrongType = append(c.WrongType, f.Name)
		}
	}
	return c
}

// matches applies JSON typeof semantics: decoded numbers are float64,
// and both arrays and objects satisfy an Array-kind declaration (the
// non-list case is rejected by the structural pass that follows).
func matches(k Kind, v any) bool {
	switch k {
	case String:
		_, ok := v.(string)
		return ok
	case Number:
		_, ok := v.(float64)
		return ok
	case Array:
		switch v.(type) {
		case []any, map[string]any:
			return true
		}
		return false
	}
	return false
}

// Message returns the error text for the first non-empty class, in
// missing > empty > wrong-type order, with singular/plural phrasing
// depending on how many keys the class collected.
func (c Classification) Message() (string, bool) {
	switch {
	case len(c.Missing) == 1:
		return fmt.Sprintf("Request body is missing the following required key: %s.", c.Missing[0]), true
	case len(c.Missing) > 1:
		return fmt.Sprintf("Request body is missing the following required keys: %s.", strings.Join(c.Missing, ", ")), true
	case len(c.Empty) == 1:
		return fmt.Sprintf("Following key must have a value: %s.", c.Empty[0]), true
	case len(c.Empty) > 1:
		return fmt.Sprintf("Following keys must have a value: %s.", strings.Join(c.Empty, ", ")), true
	case len(c.WrongType) == 1:
		return fmt.Sprintf("Following key have wrong value type: %s.", c.WrongType[0]), true
	case len(c.WrongType) > 1:
		return fmt.Sprintf("Following keys have wrong value types: %s.", strings.Join(c.WrongType, ", ")), true
	}
	return "", false
}

// TimestampRE is the fixed wire format for dates: ISO-8601 with
// millisecond precision and a literal Z. Not general ISO parsing.
var TimestampRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)

// EmailRE gates email-typed fields.
var EmailRE = regexp.MustCompile(`^[\w-]+(\.[\w-]+)*@([\w-]+\.)+[a-zA-Z]{2,7}$`)
