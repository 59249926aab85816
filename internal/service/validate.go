package service

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	apperrors "libraryapi/internal/errors"
)

// DateLayout is the wire format of date fields.
const DateLayout = "2006-01-02"

// newValidator returns a validator that reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput runs struct validation and converts failed "required" tags
// into a MissingFieldError.
func validateInput(v *validator.Validate, in interface{}) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	missing := &apperrors.MissingFieldError{}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing.Fields = append(missing.Fields, fe.Field())
			continue
		}
		return &apperrors.InvalidFieldError{Field: fe.Field(), Reason: "failed " + fe.Tag() + " check"}
	}
	return missing
}

// parseDate converts an optional YYYY-MM-DD string into a date column value.
func parseDate(field string, s *string) (*datatypes.Date, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, &apperrors.InvalidFieldError{Field: field, Reason: "expected YYYY-MM-DD"}
	}
	d := datatypes.Date(t)
	return &d, nil
}

// FormatDate renders an optional date column value as YYYY-MM-DD.
func FormatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(DateLayout)
	return &s
}
