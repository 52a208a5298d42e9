// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// bookIDPattern matches catalog IDs ("ol-OL27448W") and locally assigned
// IDs. Slashes are excluded because IDs appear as URL path segments.
var bookIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]{0,127}$`)

// userIDPattern must stay free of ':' which separates storage key parts.
var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string      `json:"field"`
	Tag     string      `json:"tag"`
	Param   string      `json:"param,omitempty"`
	Value   interface{} `json:"-"`
	Message string      `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// Error collects every failed rule of one struct.
type Error struct {
	Fields []FieldError
}

func (ve *Error) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}

	messages := make([]string, len(ve.Fields))
	for i, fe := range ve.Fields {
		messages[i] = fe.Message
	}
	return strings.Join(messages, "; ")
}

// Details returns the structured error payload used by the API envelope.
func (ve *Error) Details() map[string]interface{} {
	if len(ve.Fields) == 1 {
		fe := ve.Fields[0]
		return map[string]interface{}{"field": fe.Field, "tag": fe.Tag}
	}
	return map[string]interface{}{"fields": ve.Fields}
}

// Get returns the shared validator. Struct metadata is cached across calls.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)

		// bookid: catalog or local book identifier usable in URLs
		_ = validate.RegisterValidation("bookid", func(fl validator.FieldLevel) bool {
			return bookIDPattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("userid", func(fl validator.FieldLevel) bool {
			return userIDPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// fieldName reports json names for API payloads and koanf names for
// configuration so that messages use the names users actually type.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "koanf"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct validates s. It returns nil or an *Error.
//
//	if err := validation.Struct(&req); err != nil {
//	    writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), err.Details())
//	    return
//	}
func Struct(s interface{}) *Error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   namespace(fe),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: translate(fe),
		}
	}
	return &Error{Fields: out}
}

// Var validates a single value against tag, reporting it as field.
func Var(field string, value interface{}, tag string) *Error {
	err := Get().Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &Error{Fields: []FieldError{{Field: field, Tag: tag, Message: err.Error()}}}
	}

	fe := fieldErrs[0]
	return &Error{Fields: []FieldError{{
		Field:   field,
		Tag:     fe.Tag(),
		Param:   fe.Param(),
		Value:   value,
		Message: render(field, fe.Tag(), fe.Param(), fe.Kind() == reflect.String),
	}}}
}

// namespace drops the root struct name: "Config.server.port" -> "server.port".
func namespace(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

var simpleMessages = map[string]string{
	"required": "%s is required",
	"url":      "%s must be a valid URL",
	"http_url": "%s must be a valid http(s) URL",
	"email":    "%s must be a valid email address",
	"bookid":   "%s must be a valid book id",
	"userid":   "%s must be a valid user id",
	"hostname": "%s must be a valid hostname",
}

var paramMessages = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translate(fe validator.FieldError) string {
	return render(namespace(fe), fe.Tag(), fe.Param(), fe.Kind() == reflect.String)
}

func render(field, tag, param string, isString bool) string {
	if tmpl, ok := simpleMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}

	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
