package validation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-hrms/internal/shared/enum"
	"go-hrms/internal/shared/objectid"

	"github.com/go-playground/validator/v10"
)

// v is shared by every check; validator.Validate is safe for concurrent use.
var v = validator.New()

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = time.RFC3339
)

func invalidFormat(format string, args ...any) *Violation {
	return &Violation{Kind: KindInvalidFormat, Message: fmt.Sprintf(format, args...)}
}

func String(value any) *Violation {
	if _, ok := value.(string); !ok {
		return invalidFormat("must be a string")
	}
	return nil
}

// NonEmptyString rejects non-strings and the empty string.
func NonEmptyString(value any) *Violation {
	s, ok := value.(string)
	if !ok {
		return invalidFormat("must be a string")
	}
	if v.Var(s, "required") != nil {
		return invalidFormat("must not be empty")
	}
	return nil
}

func MaxLength(n int) Check {
	tag := "max=" + strconv.Itoa(n)
	return func(value any) *Violation {
		s, ok := value.(string)
		if !ok {
			return invalidFormat("must be a string")
		}
		if v.Var(s, tag) != nil {
			return invalidFormat("must be at most %d characters", n)
		}
		return nil
	}
}

// ObjectID requires a 24-character hex record identifier.
func ObjectID(value any) *Violation {
	s, ok := value.(string)
	if !ok || !objectid.IsValid(s) {
		return invalidFormat("must be a valid object id")
	}
	return nil
}

// ObjectIDList requires an array whose elements are all object ids.
func ObjectIDList(value any) *Violation {
	list, ok := value.([]any)
	if !ok {
		return invalidFormat("must be an array of object ids")
	}
	for i, item := range list {
		s, ok := item.(string)
		if !ok || !objectid.IsValid(s) {
			return invalidFormat("element %d must be a valid object id", i)
		}
	}
	return nil
}

func normalizeIDs(value any) any {
	switch v := value.(type) {
	case string:
		return objectid.Normalize(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeIDs(item)
		}
		return out
	default:
		return value
	}
}

// MinItems requires an array with at least n elements.
func MinItems(n int) Check {
	tag := "min=" + strconv.Itoa(n)
	return func(value any) *Violation {
		list, ok := value.([]any)
		if !ok {
			return invalidFormat("must be an array")
		}
		if v.Var(list, tag) != nil {
			return invalidFormat("must contain at least %d item(s)", n)
		}
		return nil
	}
}

func Email(value any) *Violation {
	s, ok := value.(string)
	if !ok || v.Var(s, "email") != nil {
		return invalidFormat("must be a valid email address")
	}
	return nil
}

// ISODate accepts an ISO 8601 calendar date (2026-03-10) or an RFC 3339 timestamp.
func ISODate(value any) *Violation {
	s, ok := value.(string)
	if !ok {
		return invalidFormat("must be an ISO 8601 date string")
	}
	if v.Var(s, "datetime="+dateLayout) == nil || v.Var(s, "datetime="+dateTimeLayout) == nil {
		return nil
	}
	return invalidFormat("must be an ISO 8601 date string")
}

// Enum requires a member of set; membership is exact and case-sensitive.
func Enum(set enum.Set) Check {
	return func(value any) *Violation {
		s, ok := value.(string)
		if !ok || !set.Contains(s) {
			return &Violation{
				Kind:    KindInvalidEnumValue,
				Message: fmt.Sprintf("must be one of the %s values: %s", set.Name(), quoteJoin(set.Strings())),
			}
		}
		return nil
	}
}

// OneOf requires one of an ad hoc literal set such as approve/reject.
func OneOf(literals ...string) Check {
	allowed := append([]string(nil), literals...)
	return func(value any) *Violation {
		s, ok := value.(string)
		if ok {
			for _, l := range allowed {
				if s == l {
					return nil
				}
			}
		}
		return &Violation{
			Kind:    KindInvalidLiteralChoice,
			Message: fmt.Sprintf("must be one of: %s", quoteJoin(allowed)),
		}
	}
}

func Boolean(value any) *Violation {
	if _, ok := value.(bool); !ok {
		return invalidFormat("must be a boolean")
	}
	return nil
}

func Number(value any) *Violation {
	if _, ok := toFloat(value); !ok {
		return invalidFormat("must be a number")
	}
	return nil
}

// Min requires a number >= min.
func Min(min float64) Check {
	return numberCheck("gte", min, "must not be less than %s")
}

// Max requires a number <= max.
func Max(max float64) Check {
	return numberCheck("lte", max, "must not be greater than %s")
}

// Positive requires a number > 0.
func Positive(value any) *Violation {
	return numberCheck("gt", 0, "must be greater than %s")(value)
}

func numberCheck(op string, bound float64, msg string) Check {
	b := strconv.FormatFloat(bound, 'f', -1, 64)
	tag := op + "=" + b
	return func(value any) *Violation {
		f, ok := toFloat(value)
		if !ok {
			return invalidFormat("must be a number")
		}
		if v.Var(f, tag) != nil {
			return invalidFormat(msg, b)
		}
		return nil
	}
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, s := range values {
		quoted[i] = strconv.Quote(s)
	}
	return strings.Join(quoted, ", ")
}

// ParseISODate parses a value that passed ISODate. Date-only values are UTC midnight.
func ParseISODate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(dateTimeLayout, s)
}
