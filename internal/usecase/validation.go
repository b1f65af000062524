package usecase

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/domain"
)

// newValidator builds the validator shared by the workflows. Decimal
// amounts are validated through their float form so numeric tags (gt,
// gte) apply, and the payment_method tag checks the recognized enum.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return domain.ValidPaymentMethod(domain.PaymentMethod(fl.Field().String()))
	})

	// Report fields by their json name so validation errors line up with
	// what the caller submitted.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// asValidationError converts validator failures into the domain's
// field-tagged ValidationError. Non-validator errors pass through.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageForTag(fe)
	}

	return &domain.ValidationError{Fields: fields}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	case "payment_method":
		return "is not a recognized payment method"
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}
