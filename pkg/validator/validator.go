package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError fallo de validación de un campo; Field usa el nombre JSON.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Message texto legible del fallo.
func (e *FieldError) Message() string {
	switch e.Tag {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", e.Field)
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", e.Field, e.Param)
	case "datetime":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", e.Field)
	case "uuid", "uuid_required":
		return fmt.Sprintf("%s must be a valid id", e.Field)
	default:
		return fmt.Sprintf("%s failed on '%s'", e.Field, e.Tag)
	}
}

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// notblank: string con algo más que espacios.
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// uuid_required: string con un UUID distinto de cero.
	_ = validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		id, err := uuid.Parse(fl.Field().String())
		return err == nil && id != uuid.Nil
	})
}

// ValidateStruct valida los tags `validate` y devuelve los campos que fallan (nil si todo es válido).
func ValidateStruct(data interface{}) []*FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*FieldError{{Field: "body", Tag: "invalid"}}
	}
	out := make([]*FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// First devuelve el primer campo que falla, o nil.
func First(data interface{}) *FieldError {
	if errs := ValidateStruct(data); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
