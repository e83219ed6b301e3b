// Package validation implements the request-validation contract applied to
// write payloads before persistence. DTOs declare optional fields as
// pointers so key presence survives JSON decoding, and each DTO runs a fixed
// sequence of checks that short-circuits on the first failure. Every failure
// is a field-located 422:
//
//	{"code": 422, "reason": "ValidationError", "message": ..., "location": <field>}
//
// Type errors are caught at decode time: unmarshalling into a typed DTO
// rejects a wrong-typed field with the same envelope, so no separate
// type-check pass is needed.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/AlexWarnes/fStopandGo-api/apperror"
)

// Payload is implemented by request DTOs that carry validation rules.
// Validate returns nil when the payload is acceptable, or the first
// validation failure in check order.
type Payload interface {
	Validate() *apperror.AppError
}

// DecodeBody decodes the request body into dst. Wrong-typed fields become
// field-located validation errors; anything else wrong with the body is a
// plain 400. Unknown fields are ignored.
func DecodeBody(r *http.Request, dst interface{}) *apperror.AppError {
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperror.NewValidationError(
			fmt.Sprintf("Incorrect field type: expected %s", expectedKind(typeErr.Type)),
			typeErr.Field,
		)
	}
	if errors.Is(err, io.EOF) {
		return apperror.NewBadRequestError("request body is required", err)
	}
	return apperror.NewBadRequestError("invalid request body", err)
}

// expectedKind renders the destination type of a failed unmarshal in the
// vocabulary of the error envelope.
func expectedKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.String {
			return "array of strings"
		}
		return "array"
	case reflect.Int, reflect.Int32, reflect.Int64, reflect.Float64:
		return "number"
	default:
		return t.Kind().String()
	}
}

// Required fails when the field key was absent from the payload.
func Required(location string, value *string) *apperror.AppError {
	if value == nil {
		return apperror.NewValidationError("Missing field", location)
	}
	return nil
}

// Trimmed fails when the value carries leading or trailing whitespace.
func Trimmed(location string, value string) *apperror.AppError {
	if strings.TrimSpace(value) != value {
		return apperror.NewValidationError("Cannot start or end with whitespace", location)
	}
	return nil
}

// SizedBytes enforces a maximum byte length. Byte-oriented consumers like
// bcrypt cap their input in bytes, so a multibyte value can be over this
// limit while under the same rune count.
func SizedBytes(location string, value string, max int) *apperror.AppError {
	if len(value) > max {
		return apperror.NewValidationError(
			fmt.Sprintf("Must be at most %d characters long", max),
			location,
		)
	}
	return nil
}

// Sized enforces a minimum and optional maximum character count. A max of 0
// means unbounded.
func Sized(location string, value string, min, max int) *apperror.AppError {
	length := utf8.RuneCountInString(value)
	if length < min {
		return apperror.NewValidationError(
			fmt.Sprintf("Must be at least %d characters long", min),
			location,
		)
	}
	if max > 0 && length > max {
		return apperror.NewValidationError(
			fmt.Sprintf("Must be at most %d characters long", max),
			location,
		)
	}
	return nil
}
