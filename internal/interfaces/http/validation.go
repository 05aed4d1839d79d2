package http

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Bodega-api/internal/domain"
)

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

// RequestValidator valida DTOs de entrada con las etiquetas `validate` y reporta la primera violación
// con su ruta JSON (ej. items.0.quantity).
type RequestValidator struct {
	v *validator.Validate
}

// NewRequestValidator construye el validador usando los nombres JSON de los campos.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	return &RequestValidator{v: v}
}

// Validate devuelve nil o un *domain.ValidationError con el primer campo inválido.
func (rv *RequestValidator) Validate(in any) error {
	err := rv.v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError("", err.Error())
	}
	fe := verrs[0]
	return domain.NewValidationError(fieldPath(fe.Namespace()), validationMessage(fe))
}

// fieldPath CreateInwardRequest.items[0].quantity -> items.0.quantity
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	return indexPattern.ReplaceAllString(namespace, ".$1")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "debe contener al menos " + fe.Param() + " elemento(s)"
		}
		return "debe tener al menos " + fe.Param() + " caracter(es)"
	case "max":
		return "debe tener como máximo " + fe.Param() + " caracteres"
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "gte":
		return "debe ser mayor o igual que " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	default:
		return "valor inválido"
	}
}
