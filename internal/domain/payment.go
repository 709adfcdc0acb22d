package domain

import (
	"encoding/json"
	"maps"
)

// Environment selects which Amwal backend a payment runs against
type Environment string

const (
	EnvironmentSIT  Environment = "SIT"
	EnvironmentUAT  Environment = "UAT"
	EnvironmentPROD Environment = "PROD"
)

// Currency of the transaction. Amwal only settles in Omani rial today.
type Currency string

const (
	CurrencyOMR Currency = "OMR"
)

// Locale controls the language of the native checkout UI
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"
)

// TransactionType selects the checkout method presented by the native SDK
type TransactionType string

const (
	TransactionTypeNFC        TransactionType = "NFC"
	TransactionTypeCardWallet TransactionType = "CARD_WALLET"
	TransactionTypeApplePay   TransactionType = "APPLE_PAY"
)

// Recognized AdditionValues keys consumed by the native SDK
const (
	AdditionUseBottomSheetDesign = "useBottomSheetDesign"
	AdditionIgnoreReceipt        = "ignoreReceipt"
	AdditionPrimaryColor         = "primaryColor"
	AdditionSecondaryColor       = "secondaryColor"
	AdditionMerchantIdentifier   = "merchantIdentifier"

	DefaultApplePayMerchantIdentifier = "merchant.applepay.amwalpay"
)

// PaymentConfig is everything a caller provides to start one payment attempt.
// It is treated as immutable: the bridge copies it before filling defaults.
type PaymentConfig struct {
	Environment       Environment       `json:"environment" validate:"required,amwal_env"`
	Currency          Currency          `json:"currency" validate:"required,amwal_currency"`
	Amount            string            `json:"amount" validate:"required,amount"`
	MerchantID        string            `json:"merchantId" validate:"required"`
	TerminalID        string            `json:"terminalId" validate:"required"`
	Locale            Locale            `json:"locale" validate:"required,amwal_locale"`
	TransactionType   TransactionType   `json:"transactionType" validate:"required,amwal_txn_type"`
	SecureHash        string            `json:"secureHash" validate:"required"`
	CustomerID        string            `json:"customerId,omitempty"`
	TransactionID     string            `json:"transactionId,omitempty"`
	MerchantReference string            `json:"merchantReference,omitempty"`
	AdditionValues    map[string]string `json:"additionValues,omitempty" validate:"omitempty,addition_values"`
}

// DefaultAdditionValues returns the values the native SDK assumes when the caller omits them
func DefaultAdditionValues() map[string]string {
	return map[string]string{
		AdditionUseBottomSheetDesign: "false",
		AdditionIgnoreReceipt:        "false",
		AdditionMerchantIdentifier:   DefaultApplePayMerchantIdentifier,
	}
}

// MergedAdditionValues overlays the caller's values on the defaults without touching either map
func (c PaymentConfig) MergedAdditionValues() map[string]string {
	merged := DefaultAdditionValues()
	maps.Copy(merged, c.AdditionValues)
	return merged
}

// NativeConfig is the flattened configuration handed to the native SDK
type NativeConfig struct {
	Environment       Environment       `json:"environment"`
	SessionToken      string            `json:"sessionToken"`
	Currency          Currency          `json:"currency"`
	Amount            string            `json:"amount"`
	MerchantID        string            `json:"merchantId"`
	TerminalID        string            `json:"terminalId"`
	Locale            Locale            `json:"locale"`
	CustomerID        *string           `json:"customerId"`
	TransactionType   TransactionType   `json:"transactionType"`
	TransactionID     string            `json:"transactionId"`
	AdditionValues    map[string]string `json:"additionValues"`
	MerchantReference string            `json:"merchantReference,omitempty"`
}

// NewNativeConfig builds the native payload for cfg. transactionID must already be resolved.
func NewNativeConfig(cfg PaymentConfig, sessionToken, transactionID string) NativeConfig {
	var customerID *string
	if cfg.CustomerID != "" {
		id := cfg.CustomerID
		customerID = &id
	}

	return NativeConfig{
		Environment:       cfg.Environment,
		SessionToken:      sessionToken,
		Currency:          cfg.Currency,
		Amount:            cfg.Amount,
		MerchantID:        cfg.MerchantID,
		TerminalID:        cfg.TerminalID,
		Locale:            cfg.Locale,
		CustomerID:        customerID,
		TransactionType:   cfg.TransactionType,
		TransactionID:     transactionID,
		AdditionValues:    cfg.MergedAdditionValues(),
		MerchantReference: cfg.MerchantReference,
	}
}

// Response statuses emitted by the native SDK and by the bridge itself
const (
	ResponseStatusSuccess = "success"
	ResponseStatusError   = "error"
	// ResponseStatusFailure is what the bridge reports when the SDK never got to run
	ResponseStatusFailure = "ERROR"
)

// PaymentResponse is the single terminal event of a native payment session
type PaymentResponse struct {
	TransactionID string          `json:"transactionId"`
	Status        string          `json:"status"`
	Message       string          `json:"message"`
	Data          json.RawMessage `json:"data,omitempty"`
}

// Succeeded reports whether the native SDK completed the transaction
func (r PaymentResponse) Succeeded() bool {
	return r.Status == ResponseStatusSuccess
}

// FailureResponse builds the response the bridge emits when the attempt could not complete
func FailureResponse(transactionID, message string) PaymentResponse {
	return PaymentResponse{
		TransactionID: transactionID,
		Status:        ResponseStatusFailure,
		Message:       message,
	}
}
