package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidationError 描述首个未通过校验的字段
type ValidationError struct {
	Field string
	Rule  string
	Param string
}

func (e *ValidationError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("field [%s] failed rule [%s=%s]", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("field [%s] failed rule [%s]", e.Field, e.Rule)
}

func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			first := vErrs[0]
			return &ValidationError{Field: first.Field(), Rule: first.Tag(), Param: first.Param()}
		}
		return err
	}
	return nil
}
