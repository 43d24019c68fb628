// Package validation checks inbound request bodies against per-DTO rule tables.
//
// A Schema lists the accepted fields of one request, whether each is required,
// and the checks its value must pass. Validate reports every failing field in
// a single pass so callers can show all problems at once; Bind additionally
// decodes a valid body into the typed DTO.
package validation

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

type Kind string

const (
	KindMissingRequiredField Kind = "MissingRequiredField"
	KindInvalidFormat        Kind = "InvalidFormat"
	KindInvalidEnumValue     Kind = "InvalidEnumValue"
	KindInvalidLiteralChoice Kind = "InvalidLiteralChoice"
	KindUnknownField         Kind = "UnknownField"
)

// FieldError is one failing field. Field uses the wire name; nested values
// are addressed as tasks[0].name.
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether field failed with the given kind.
func (e Errors) Has(field string, kind Kind) bool {
	return slices.ContainsFunc(e, func(fe FieldError) bool {
		return fe.Field == field && fe.Kind == kind
	})
}

// Fields returns the failing field names in report order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Field)
	}
	return out
}

type Violation struct {
	Kind    Kind
	Message string
}

// Check is a single pass/fail rule applied to a present field value.
type Check func(value any) *Violation

type Field struct {
	Name     string
	Required bool
	Checks   []Check
	// Items validates each element of an array of objects.
	Items *Schema
	// Normalize rewrites a valid value before Bind decodes it.
	Normalize func(any) any
}

func Required(name string, checks ...Check) Field {
	return Field{Name: name, Required: true, Checks: checks}
}

func Optional(name string, checks ...Check) Field {
	return Field{Name: name, Checks: checks}
}

// RequiredID declares a required object id, lowercased on Bind.
func RequiredID(name string) Field {
	return Field{Name: name, Required: true, Checks: []Check{ObjectID}, Normalize: normalizeIDs}
}

// OptionalID declares an optional object id, lowercased on Bind.
func OptionalID(name string) Field {
	return Field{Name: name, Checks: []Check{ObjectID}, Normalize: normalizeIDs}
}

// OptionalIDList declares an optional array of object ids, lowercased on Bind.
func OptionalIDList(name string, checks ...Check) Field {
	return Field{Name: name, Checks: append([]Check{ObjectIDList}, checks...), Normalize: normalizeIDs}
}

// RequiredList declares a required array whose elements must match items.
func RequiredList(name string, items Schema, checks ...Check) Field {
	return Field{Name: name, Required: true, Checks: checks, Items: &items}
}

// OptionalList declares an optional array whose elements must match items.
func OptionalList(name string, items Schema, checks ...Check) Field {
	return Field{Name: name, Checks: checks, Items: &items}
}

type Schema struct {
	Name   string
	Fields []Field
}

func NewSchema(name string, fields ...Field) Schema {
	return Schema{Name: name, Fields: fields}
}

// FieldNames lists the declared fields in declaration order.
func (s Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func (s Schema) declares(name string) bool {
	return slices.ContainsFunc(s.Fields, func(f Field) bool { return f.Name == name })
}

// UnknownFieldPolicy decides what happens to body keys a schema does not declare.
type UnknownFieldPolicy string

const (
	UnknownFieldsIgnore UnknownFieldPolicy = "ignore"
	UnknownFieldsReject UnknownFieldPolicy = "reject"
)

// ParseUnknownFieldPolicy falls back to ignore for empty or unrecognised input.
func ParseUnknownFieldPolicy(s string) UnknownFieldPolicy {
	if UnknownFieldPolicy(strings.ToLower(strings.TrimSpace(s))) == UnknownFieldsReject {
		return UnknownFieldsReject
	}
	return UnknownFieldsIgnore
}

type options struct {
	rejectUnknown bool
}

type Option func(*options)

// RejectUnknown reports every undeclared field as an UnknownField error.
func RejectUnknown() Option {
	return func(o *options) { o.rejectUnknown = true }
}

// WithPolicy applies an UnknownFieldPolicy read from configuration.
func WithPolicy(p UnknownFieldPolicy) Option {
	return func(o *options) { o.rejectUnknown = p == UnknownFieldsReject }
}

// Validate runs every check of every present field. Absent or null optional
// fields are skipped; absent or null required fields produce exactly one
// MissingRequiredField error. The result is nil when raw is valid.
func (s Schema) Validate(raw map[string]any, opts ...Option) Errors {
	return s.validate("", raw, opts...)
}

func (s Schema) validate(prefix string, raw map[string]any, opts ...Option) Errors {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var errs Errors
	for _, f := range s.Fields {
		path := prefix + f.Name
		value, present := raw[f.Name]
		if !present || value == nil {
			if f.Required {
				errs = append(errs, FieldError{
					Field:   path,
					Kind:    KindMissingRequiredField,
					Message: fmt.Sprintf("%s is required", path),
				})
			}
			continue
		}

		for _, check := range f.Checks {
			if v := check(value); v != nil {
				errs = append(errs, FieldError{
					Field:   path,
					Kind:    v.Kind,
					Message: fmt.Sprintf("%s %s", path, v.Message),
				})
			}
		}

		if f.Items != nil {
			errs = append(errs, f.Items.validateList(path, value, opts...)...)
		}
	}

	if o.rejectUnknown {
		unknown := make([]string, 0)
		for key := range raw {
			if !s.declares(key) {
				unknown = append(unknown, key)
			}
		}
		sort.Strings(unknown)
		for _, key := range unknown {
			errs = append(errs, FieldError{
				Field:   prefix + key,
				Kind:    KindUnknownField,
				Message: fmt.Sprintf("%s is not allowed", prefix+key),
			})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (s Schema) validateList(path string, value any, opts ...Option) Errors {
	list, ok := value.([]any)
	if !ok {
		return Errors{{
			Field:   path,
			Kind:    KindInvalidFormat,
			Message: fmt.Sprintf("%s must be an array", path),
		}}
	}

	var errs Errors
	for i, item := range list {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		obj, ok := item.(map[string]any)
		if !ok {
			errs = append(errs, FieldError{
				Field:   itemPath,
				Kind:    KindInvalidFormat,
				Message: fmt.Sprintf("%s must be an object", itemPath),
			})
			continue
		}
		errs = append(errs, s.validate(itemPath+".", obj, opts...)...)
	}
	return errs
}
