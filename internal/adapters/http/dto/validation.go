package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

var (
	// ErrValidation marks a request whose fields failed their validate tags.
	ErrValidation = errors.New("validation failed")

	// ErrBinding marks a body or query string that could not be decoded.
	ErrBinding = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field errors are reported under
// their JSON names, or form names for query-only fields.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)

		for tag, fn := range map[string]validator.Func{
			"category": validateCategory,
			"notempty": validateNotEmpty,
		} {
			if err := validate.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("dto: registering %q: %v", tag, err))
			}
		}
	})

	return validate
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}

	return f.Name
}

// Validate checks v's validate tags.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// BindAndValidate decodes the JSON body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	return bind(v, c.ShouldBindJSON)
}

// BindQueryAndValidate decodes the query string into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	return bind(v, c.ShouldBindQuery)
}

func bind(v any, decode func(any) error) error {
	if err := decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// FieldErrors maps each failing field to a readable message. It is empty
// for errors that did not come from the validator.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = validationMessage(fe)
	}

	return out
}

// IsValidationError reports whether err carries validator field errors.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

var validationMessages = map[string]string{
	"required": "this field is required",
	"email":    "must be a valid email address",
	"url":      "must be a valid URL",
	"category": "must be one of: " + categoryList(),
	"notempty": "must not be empty",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"gt":       "must be greater than %s",
	"lt":       "must be less than %s",
	"oneof":    "must be one of: %s",
}

func validationMessage(fe validator.FieldError) string {
	switch tag := fe.Tag(); tag {
	case "min", "max":
		return lengthMessage(tag, fe.Param(), fe.Kind())
	default:
		msg, ok := validationMessages[tag]
		if !ok {
			return "failed validation: " + tag
		}

		if strings.Contains(msg, "%s") {
			return fmt.Sprintf(msg, fe.Param())
		}

		return msg
	}
}

// lengthMessage counts characters for strings and items for everything else.
func lengthMessage(tag, param string, kind reflect.Kind) string {
	bound := "at least"
	if tag == "max" {
		bound = "at most"
	}

	switch kind {
	case reflect.String:
		return fmt.Sprintf("must be %s %s characters", bound, param)
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("must have %s %s items", bound, param)
	default:
		return fmt.Sprintf("must be %s %s", bound, param)
	}
}

func categoryList() string {
	names := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		names = append(names, string(c))
	}

	return strings.Join(names, ", ")
}

// validateCategory accepts an empty value or any spelling
// domain.ParseCategory understands.
func validateCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	_, ok := domain.ParseCategory(value)

	return ok
}

func validateNotEmpty(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
