package controllers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)
	zipRegex   = regexp.MustCompile(`^[0-9]{6}$`)
)

// RegisterValidators attaches the custom binding rules to gin's validator
// engine. Call once at startup, before the first request binds.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
			return phoneRegex.MatchString(fl.Field().String())
		})
		v.RegisterValidation("zip6", func(fl validator.FieldLevel) bool {
			return zipRegex.MatchString(fl.Field().String())
		})
	}
}
