package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
)

// Register adds the custom rules and reports fields by their json names.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return usernamePattern.MatchString(value) && value != "me"
	})
}

// RegisterWithGin installs the rules on gin's binding validator.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	return Register(v)
}

var messages = map[string]string{
	"required": "Обязательное поле.",
	"email":    "Введите правильный адрес электронной почты.",
	"max":      "Слишком длинное значение.",
	"min":      "Слишком короткое значение.",
	"gte":      "Значение слишком мало.",
	"hexcolor": "Введите цвет в формате #RRGGBB.",
	"slug":     "Допустимы только латинские буквы, цифры, дефис и подчёркивание.",
	"username": "Введите правильное имя пользователя.",
}

// FieldErrors turns binding errors into messages keyed by request field.
// It returns false when err is not a validation error, e.g. malformed JSON.
func FieldErrors(err error) (map[string][]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	details := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "Некорректное значение."
		}
		details[fe.Field()] = append(details[fe.Field()], msg)
	}
	return details, true
}
