package validation

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// busRegPattern matches Indian-style registration plates like "MH12AB1234".
var busRegPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{1,2}[A-Z]{1,2}[0-9]{4}$`)

// Register installs custom validators on gin's binding engine. Called once
// at startup.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("busreg", validBusRegistration)
	}
}

func validBusRegistration(fl validator.FieldLevel) bool {
	return busRegPattern.MatchString(fl.Field().String())
}
