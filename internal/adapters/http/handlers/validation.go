package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/currency"
)

// RegisterValidators adds the custom binding tags used by request DTOs to
// gin's validator. It is safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("iso4217", isISO4217)
}

func isISO4217(fl validator.FieldLevel) bool {
	_, err := currency.ParseISO(fl.Field().String())
	return err == nil
}
