package common

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

// Enumerations accepted by the record forms.
var (
	CustomerCategories = []string{"Clinic", "Doctor", "Lab"}
	SupplierTypes      = []string{"Porcelain", "Laminate", "PFM", "Post NPG", "Milling", "Customize Abutment"}
	PriceTiers         = []string{"Standard", "Legacy"}
	Shades             = []string{
		"A1", "A2", "A3", "A3.5", "A4", "B1", "B2", "B3", "B4",
		"C1", "C2", "C3", "C4", "D2", "D3", "D4", "OM1", "OM2", "OM3", "BW",
		"BL1", "BL2", "BL3", "BL4",
	}
)

// NewValidator returns a validator that reports json field names and knows the
// lab enumerations (customer_category, supplier_type, shade, price_tier).
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	enums := map[string][]string{
		"customer_category": CustomerCategories,
		"supplier_type":     SupplierTypes,
		"price_tier":        PriceTiers,
		"shade":             Shades,
	}
	for tag, values := range enums {
		allowed := values
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if s == "" {
				return true
			}
			for _, a := range allowed {
				if s == a {
					return true
				}
			}
			return false
		})
	}
	return v
}

// ValidateStruct runs v over dst and converts failures into a VALIDATION_ERROR.
func ValidateStruct(v *validator.Validate, dst any) error {
	if v == nil {
		return nil
	}
	err := v.Struct(dst)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return &AppError{Code: "VALIDATION_ERROR", Message: "invalid payload", HTTPStatus: http.StatusBadRequest, Err: err}
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fieldPath(fe.Namespace())] = messageForTag(fe.Tag(), fe.Param())
	}
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "invalid payload",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
		Details:    map[string]any{"fields": fields},
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "customer_category":
		return "must be one of " + strings.Join(CustomerCategories, ", ")
	case "supplier_type":
		return "must be one of " + strings.Join(SupplierTypes, ", ")
	case "price_tier":
		return "must be one of " + strings.Join(PriceTiers, ", ")
	case "shade":
		return "must be a Vita shade"
	default:
		return "is invalid"
	}
}
