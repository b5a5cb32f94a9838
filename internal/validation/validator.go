// Package validation wraps go-playground/validator for request payloads.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Rule registers a custom validation on the underlying validator
type Rule struct {
	Rule func(v *validator.Validate)
}

// Validator is a wrapper around the actual validator. It reports fields by
// their JSON names and understands decimal.Decimal amounts.
type Validator struct {
	validator *validator.Validate
}

// New builds a Validator with the given extra rules
func New(rules ...Rule) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	for _, r := range rules {
		r.Rule(v)
	}

	return &Validator{validator: v}
}

// Struct validates s and returns an *Error listing every failed field
func (v *Validator) Struct(s any) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field: trimRoot(fe.Namespace()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// FieldError is one failed constraint
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func (f FieldError) String() string {
	if f.Param == "" {
		return fmt.Sprintf("%s failed %s", f.Field, f.Rule)
	}
	return fmt.Sprintf("%s failed %s=%s", f.Field, f.Rule, f.Param)
}

// Error is returned by Struct when a payload breaks its declared constraints
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func (e *Error) IsTransient() bool {
	return false
}

// trimRoot drops the top-level struct name from a validator namespace
func trimRoot(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
