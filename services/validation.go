package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Kariqs/justdrops-api/utils"
	"github.com/go-playground/validator/v10"
)

// Input structs carry gin's `binding` tags; the service validator reads the
// same tags so non-HTTP callers (seeding, tests) get identical rules.
var validate = NewValidator("binding")

// RegisterValidations installs the custom rules and JSON field naming on v.
func RegisterValidations(v *validator.Validate) {
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
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return utils.IsSlug(fl.Field().String())
	})
}

func NewValidator(tagName string) *validator.Validate {
	v := validator.New()
	v.SetTagName(tagName)
	RegisterValidations(v)
	return v
}

// deriveSlug returns slug, or one derived from name when slug is empty. A name
// with nothing usable in it is rejected.
func deriveSlug(slug, name string) (string, error) {
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if !utils.IsSlug(slug) {
		return "", invalid("Cannot derive a slug from %q, send one explicitly", name)
	}
	return slug, nil
}

func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return invalid("%s", DescribeValidation(err))
	}
	return nil
}

// DescribeValidation turns validator errors into a single readable sentence.
func DescribeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Invalid input"
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "slug":
		return fmt.Sprintf("%s must contain only lowercase letters, digits and hyphens", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
