package dispatch

import (
	"encoding/json"
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error bucket names, keyed by the input each schema was parsed from.
const (
	bucketQuery = "query_params"
	bucketBody  = "body_params"
	bucketForm  = "form_params"
)

// FieldError describes a single schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ElementErrors collects the violations of one element of a batched body.
type ElementErrors struct {
	Index  int          `json:"index"`
	Errors []FieldError `json:"errors"`
}

// Global validator instance for reuse. Field names in error reports come
// from the json struct tag so clients see the names they sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NormalizeQuery converts a multi-valued query/form mapping into a flat map:
// keys with exactly one value are flattened to that value, keys with
// repeated occurrences keep the ordered list of all their values. Callers
// therefore never unwrap a one-element array for singleton keys, and
// repeated keys round-trip as arrays.
func NormalizeQuery(values url.Values) map[string]any {
	normalized := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 1 {
			normalized[key] = vals[0]
		} else {
			normalized[key] = vals
		}
	}
	return normalized
}

// decodeParams fills target from a normalized parameter map and validates
// it. Returns the accumulated field errors, or nil when target is valid.
func decodeParams(params map[string]any, target any) []FieldError {
	raw, err := json.Marshal(params)
	if err != nil {
		return []FieldError{{Field: "root", Message: "is not a valid object"}}
	}
	return decodeJSON(raw, target)
}

// decodeJSON fills target from a raw JSON object and validates it.
// Returns the accumulated field errors, or nil when target is valid.
func decodeJSON(raw []byte, target any) []FieldError {
	if err := json.Unmarshal(raw, target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return []FieldError{{Field: typeErr.Field, Message: "has invalid type"}}
		}
		return []FieldError{{Field: "root", Message: "is not a valid object"}}
	}
	return validateSchema(target)
}

// validateSchema runs the struct validator and converts its report into
// field errors. Returns nil when the value is valid.
func validateSchema(target any) []FieldError {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []FieldError{{Field: "root", Message: "is invalid"}}
	}

	fieldErrs := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrs = append(fieldErrs, FieldError{
			Field:   fe.Field(),
			Message: tagMessage(fe.Tag()),
		})
	}
	return fieldErrs
}

// tagMessage maps validation tags to client-facing messages.
func tagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	case "oneof":
		return "has an invalid value"
	default:
		return "is invalid"
	}
}

// decodeJSONMany parses a batched body: the raw input must be a JSON array,
// and each element is decoded independently against a fresh schema from
// factory. All failing elements are reported together; a body that is not
// an array at all yields the single synthetic root error.
func decodeJSONMany(raw []byte, factory func() any) ([]any, any) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, []FieldError{{Field: "root", Message: "is not an array of objects"}}
	}

	parsed := make([]any, 0, len(elements))
	var failures []ElementErrors
	for i, element := range elements {
		target := factory()
		if fieldErrs := decodeJSON(element, target); len(fieldErrs) > 0 {
			failures = append(failures, ElementErrors{Index: i, Errors: fieldErrs})
			continue
		}
		parsed = append(parsed, target)
	}

	if len(failures) > 0 {
		return nil, failures
	}
	return parsed, nil
}
