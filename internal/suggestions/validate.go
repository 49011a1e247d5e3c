package suggestions

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var messages = map[string]string{
	"Suggestion.min": "Suggestion must be at least 10 characters",
	"Suggestion.max": "Suggestion must be at most 1000 characters",
	"Name.max":       "Name must be at most 100 characters",
	"Email.max":      "Email must be at most 255 characters",
	"Email.email":    "Invalid email address",
}

// firstViolation は最初に引っかかったルールの文言を返す（フィールド順: suggestion, name, email）
func firstViolation(req SubmitRequest) (string, bool) {
	err := validate.Struct(req)
	if err == nil {
		return "", false
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid submission", true
	}
	fe := verrs[0]
	if msg, ok := messages[fe.StructField()+"."+fe.Tag()]; ok {
		return msg, true
	}
	return "Invalid " + strings.ToLower(fe.StructField()), true
}
