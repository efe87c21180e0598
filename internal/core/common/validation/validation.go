package validation

import (
	"fmt"
	"math/big"

	errors "github.com/frahmantamala/payment-processor/internal"
	"github.com/shopspring/decimal"
)

// Bounds for amounts accepted from callers. Anything outside them would
// expand into an enormous string when formatted.
const (
	MaxAmountExponent = 28
	MinAmountExponent = -28
	MaxAmountDigits   = 38
)

var maxAmountCoefficient = new(big.Int).Exp(big.NewInt(10), big.NewInt(MaxAmountDigits), nil)

// AmountInRange reports whether d stays within the exponent and digit
// bounds above. It never formats or rescales d.
func AmountInRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < MinAmountExponent || exp > MaxAmountExponent {
		return false
	}
	return d.Coefficient().CmpAbs(maxAmountCoefficient) < 0
}

// FormatThreshold prints a money threshold with two fractional digits,
// or with its full precision when it has sub-cent digits.
func FormatThreshold(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		switch v := value.(type) {
		case string:
			if v == "" {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		case *string:
			if v == nil || *v == "" {
				return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return fv
}

// Decimal accepts a string field only if it parses as an exact decimal.
func (fv *FieldValidator) Decimal(code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok || v == "" {
			return nil
		}
		if _, err := decimal.NewFromString(v); err != nil {
			return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s must be a decimal number", fv.FieldName), code)
		}
		return nil
	})
	return fv
}

// InRange rejects decimals, or decimal strings, outside the amount bounds.
// Unparseable strings are left to Decimal.
func (fv *FieldValidator) InRange(code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		var d decimal.Decimal
		switch v := value.(type) {
		case decimal.Decimal:
			d = v
		case string:
			parsed, err := decimal.NewFromString(v)
			if err != nil {
				return nil
			}
			d = parsed
		default:
			return nil
		}
		if !AmountInRange(d) {
			return errors.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is out of range", fv.FieldName), code)
		}
		return nil
	})
	return fv
}

// MinDecimal compares with exact decimal arithmetic. Values outside the
// amount bounds are skipped; InRange reports them.
func (fv *FieldValidator) MinDecimal(min decimal.Decimal, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(decimal.Decimal); ok && AmountInRange(v) {
			if v.LessThan(min) {
				message := fmt.Sprintf("%s must be at least %s", fv.FieldName, FormatThreshold(min))
				return errors.NewValidationFieldError(fv.FieldName, message, code)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			appErr := validator(field.Value)
			if appErr == nil {
				continue
			}

			if details, ok := appErr.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
				continue
			}

			validationErrors = append(validationErrors, errors.ValidationError{
				Field:   field.FieldName,
				Message: appErr.Message,
				Code:    string(appErr.Code),
			})
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}

func ValidateChargeAmount(amount, min decimal.Decimal) *errors.AppError {
	validator := NewValidator()
	validator.Field("amount", amount).
		InRange(errors.ErrCodeInvalidAmount).
		MinDecimal(min, errors.ErrCodeAmountTooLow)
	return validator.Validate()
}
