package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator checks decoded request bodies against their validate tags
// and reports the first failing field by its JSON name.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

type fieldError struct {
	Code    string
	Field   string
	Message string
}

func (v *requestValidator) check(req any) *fieldError {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &fieldError{Code: codeInvalidRequestBody, Message: "invalid request body"}
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return &fieldError{Code: codeMissingRequiredField, Field: field, Message: field + " is required"}
	case "uuid":
		return &fieldError{Code: codeInvalidID, Field: field, Message: field + " must be a valid id"}
	case "datetime":
		return &fieldError{Code: codeInvalidTimeFormat, Field: field, Message: field + " must be an RFC 3339 timestamp"}
	case "gt":
		if field == "capacity" {
			return &fieldError{Code: codeInvalidCapacity, Field: field, Message: field + " must be greater than " + fe.Param()}
		}
	case "max":
		if field == "note" {
			return &fieldError{Code: codeNoteTooLong, Field: field, Message: field + " must be at most " + fe.Param() + " characters"}
		}
	}
	return &fieldError{Code: codeInvalidField, Field: field, Message: field + " is invalid"}
}

// decodeAndValidate reads a JSON body into dst and validates it. It writes the
// error response itself and reports whether the handler should continue.
func (v *requestValidator) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return false
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return false
	}
	if fe := v.check(dst); fe != nil {
		writeFieldError(w, http.StatusBadRequest, fe.Code, fe.Field, fe.Message)
		return false
	}
	return true
}
