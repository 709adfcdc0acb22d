package payment

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kevin07696/amwalpay-bridge/internal/domain"
	"github.com/shopspring/decimal"
)

// maxAmountScale is the number of minor-unit digits of the rial (baisa)
const maxAmountScale = 3

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validator checks a PaymentConfig before any network call is made.
// The secret is only checked for presence: a malformed key is reported by the
// token exchange as INVALID_KEY_FORMAT, which alerts the user.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the Amwal field rules registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("amwal_env", func(fl validator.FieldLevel) bool {
		switch domain.Environment(fl.Field().String()) {
		case domain.EnvironmentSIT, domain.EnvironmentUAT, domain.EnvironmentPROD:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("amwal_currency", func(fl validator.FieldLevel) bool {
		return domain.Currency(fl.Field().String()) == domain.CurrencyOMR
	})
	_ = v.RegisterValidation("amwal_locale", func(fl validator.FieldLevel) bool {
		switch domain.Locale(fl.Field().String()) {
		case domain.LocaleEnglish, domain.LocaleArabic:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("amwal_txn_type", func(fl validator.FieldLevel) bool {
		switch domain.TransactionType(fl.Field().String()) {
		case domain.TransactionTypeNFC, domain.TransactionTypeCardWallet, domain.TransactionTypeApplePay:
			return true
		}
		return false
	})
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		return validAmount(fl.Field().String())
	})
	_ = v.RegisterValidation("addition_values", func(fl validator.FieldLevel) bool {
		values, ok := fl.Field().Interface().(map[string]string)
		if !ok {
			return false
		}
		return validAdditionValues(values)
	})

	return &Validator{validate: v}
}

// Validate returns a VALIDATION_FAILED DomainError listing every offending field
func (v *Validator) Validate(cfg domain.PaymentConfig) error {
	err := v.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.WrapError(domain.ErrorCodeValidationFailed, "invalid payment config", err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}

	return domain.NewDomainError(domain.ErrorCodeValidationFailed, "invalid payment config: "+strings.Join(fields, ", ")).
		WithDetail("fields", fields)
}

func validAmount(s string) bool {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	if !amount.IsPositive() {
		return false
	}
	return -amount.Exponent() <= maxAmountScale
}

func validAdditionValues(values map[string]string) bool {
	for key, value := range values {
		switch key {
		case domain.AdditionPrimaryColor, domain.AdditionSecondaryColor:
			if !hexColor.MatchString(value) {
				return false
			}
		case domain.AdditionUseBottomSheetDesign, domain.AdditionIgnoreReceipt:
			if value != "true" && value != "false" {
				return false
			}
		}
	}
	return true
}
