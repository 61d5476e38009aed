package serverutils

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidateStruct runs the shared validator over a DTO's validate tags.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
