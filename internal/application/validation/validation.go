package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/empresas-api/internal/domain"
)

var (
	lowercaseEmail = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)
	passwordChars  = regexp.MustCompile(`^[A-Za-z0-9!@#$%^&*()_+{}\[\]:;<>,.?\\~-]+$`)
	specialChar    = regexp.MustCompile(`[!@#$%^&*()_+{}\[\]:;<>,.?\\~-]`)
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator devuelve el validador compartido con las reglas propias registradas.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Los errores se reportan con el nombre JSON del campo.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("nospaces", func(fl validator.FieldLevel) bool {
			return !strings.ContainsAny(fl.Field().String(), " \t\n")
		})
		_ = v.RegisterValidation("lowercase_email", func(fl validator.FieldLevel) bool {
			return lowercaseEmail.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return passwordChars.MatchString(s) && specialChar.MatchString(s)
		})
		instance = v
	})
	return instance
}

// Struct valida in y devuelve un domain.Error de validación con el detalle por campo, o nil.
func Struct(in interface{}) error {
	err := Validator().Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Validation("entrada inválida", nil)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, exists := fields[fe.Field()]; exists {
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return domain.Validation("entrada inválida", fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "email inválido"
	case "lowercase_email":
		return "el email solo puede contener minúsculas"
	case "nospaces":
		return "no debe contener espacios"
	case "password":
		return "debe contener al menos un carácter especial"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser como máximo %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual que %s", fe.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual que %s", fe.Param())
	default:
		return "valor inválido"
	}
}
