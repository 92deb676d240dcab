package institution

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
)

var (
	planTag  = "plan"
	planText = "plan must be one of " + strings.Join(Plans, ", ")
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(planTag, planValidation)
	core.RegisterCustomTranslation(validate, translator, planTag, planText)
}

func planValidation(fl validator.FieldLevel) bool {
	plan := fl.Field().String()
	for _, p := range Plans {
		if p == plan {
			return true
		}
	}
	return false
}
