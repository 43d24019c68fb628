package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodeJSON reads a JSON object keeping numbers as json.Number so amounts are
// not rounded before validation. Anything other than a single object is
// reported as an InvalidFormat error on the body.
func DecodeJSON(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, bodyError("request body must be a JSON object")
		}
		return nil, bodyError("request body is not valid JSON")
	}
	if raw == nil {
		return nil, bodyError("request body must be a JSON object")
	}
	if dec.More() {
		return nil, bodyError("request body must contain a single JSON object")
	}
	return raw, nil
}

func bodyError(msg string) Errors {
	return Errors{{Field: "body", Kind: KindInvalidFormat, Message: msg}}
}

// Bind validates raw against schema and, when valid, decodes the declared
// fields into dst. Undeclared fields never reach dst.
func Bind(schema Schema, raw map[string]any, dst any, opts ...Option) error {
	if errs := schema.Validate(raw, opts...); len(errs) > 0 {
		return errs
	}

	declared := make(map[string]any, len(schema.Fields))
	for _, f := range schema.Fields {
		if value, ok := raw[f.Name]; ok && value != nil {
			if f.Normalize != nil {
				value = f.Normalize(value)
			}
			declared[f.Name] = value
		}
	}

	body, err := json.Marshal(declared)
	if err != nil {
		return fmt.Errorf("validation: encode %s: %w", schema.Name, err)
	}

	if err := json.NewDecoder(bytes.NewReader(body)).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return Errors{{
				Field:   typeErr.Field,
				Kind:    KindInvalidFormat,
				Message: fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.String()),
			}}
		}
		return fmt.Errorf("validation: decode %s: %w", schema.Name, err)
	}
	return nil
}

// BindJSON is DecodeJSON followed by Bind.
func BindJSON(r io.Reader, schema Schema, dst any, opts ...Option) error {
	raw, err := DecodeJSON(r)
	if err != nil {
		return err
	}
	return Bind(schema, raw, dst, opts...)
}
