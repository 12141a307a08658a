// Package validation checks inbound payloads against declarative field rules.
// It never touches the store. Every offending field is reported at once.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MinYear is the earliest accepted release year.
const MinYear = 1900

// currentYear bounds year fields from above; replaced in tests.
var currentYear = func() int { return time.Now().Year() }

// Error maps a JSON field name to every message raised for it.
type Error struct {
	Fields map[string][]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg against field.
func (e *Error) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// FieldError builds a single-field Error.
func FieldError(field, msg string) *Error {
	e := &Error{}
	e.Add(field, msg)
	return e
}

// normalizer is implemented by payloads that trim or canonicalize input
// before rules are checked.
type normalizer interface {
	normalize()
}

// reservedNickNames collide with fixed routes under /users.
var reservedNickNames = []string{"me"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names ("nickName") rather than Go names ("NickName")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})
	_ = v.RegisterValidation("notreserved", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		return !slices.ContainsFunc(reservedNickNames, func(r string) bool {
			return strings.EqualFold(r, name)
		})
	})
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(currentYear())
	})

	return v
}

// Struct normalizes payload (when supported) and checks its rules. The
// returned error is nil or an *Error.
func Struct(payload any) error {
	if n, ok := payload.(normalizer); ok {
		n.normalize()
	}

	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &Error{}
	for _, fe := range fieldErrs {
		out.Add(fieldPath(fe), message(fe))
	}
	return out
}

// FromDecodeError converts a JSON body decoding failure into an *Error.
func FromDecodeError(err error) *Error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return FieldError(typeErr.Field, fmt.Sprintf("must be of type %s", jsonTypeName(typeErr.Type)))
	}

	var timeErr *time.ParseError
	if errors.As(err, &timeErr) {
		return FieldError("body", "timestamps must be RFC 3339")
	}

	if errors.Is(err, io.EOF) {
		return FieldError("body", "request body is required")
	}
	return FieldError("body", "invalid JSON body")
}

// fieldPath drops the leading struct name: "MediaInput.category[0]" -> "category[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "nospace":
		return "cannot contain spaces"
	case "notreserved":
		return "is reserved"
	case "unique":
		return "must not contain duplicates"
	case "notfuture":
		return fmt.Sprintf("must not be later than %d", currentYear())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gtefield":
		return "must be greater than or equal to " + lowerFirst(fe.Param())
	case "min":
		return boundMessage("at least", fe)
	case "max":
		return boundMessage("at most", fe)
	default:
		return "is invalid"
	}
}

func boundMessage(bound string, fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.String:
		return fmt.Sprintf("must be %s %s characters", bound, fe.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("must contain %s %s items", bound, fe.Param())
	default:
		return fmt.Sprintf("must be %s %s", bound, fe.Param())
	}
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
