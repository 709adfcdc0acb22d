package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() PaymentConfig {
	return PaymentConfig{
		Environment:     EnvironmentUAT,
		Currency:        CurrencyOMR,
		Amount:          "1.500",
		MerchantID:      "84131",
		TerminalID:      "811018",
		Locale:          LocaleEnglish,
		TransactionType: TransactionTypeCardWallet,
		SecureHash:      "8570CEED656C8818E4A7CE04F22206358F272DAD5F0227D322B654675ABF8F83",
	}
}

func TestMergedAdditionValues_Defaults(t *testing.T) {
	cfg := testConfig()

	got := cfg.MergedAdditionValues()

	assert.Equal(t, "false", got[AdditionUseBottomSheetDesign])
	assert.Equal(t, "false", got[AdditionIgnoreReceipt])
	assert.Equal(t, DefaultApplePayMerchantIdentifier, got[AdditionMerchantIdentifier])
}

func TestMergedAdditionValues_CallerOverridesWithoutMutation(t *testing.T) {
	cfg := testConfig()
	cfg.AdditionValues = map[string]string{
		AdditionUseBottomSheetDesign: "true",
		AdditionPrimaryColor:         "#1E88E5",
	}

	got := cfg.MergedAdditionValues()

	assert.Equal(t, "true", got[AdditionUseBottomSheetDesign])
	assert.Equal(t, "#1E88E5", got[AdditionPrimaryColor])
	assert.Equal(t, DefaultApplePayMerchantIdentifier, got[AdditionMerchantIdentifier])
	assert.Len(t, cfg.AdditionValues, 2, "caller map must not receive defaults")
}

func TestNewNativeConfig(t *testing.T) {
	cfg := testConfig()
	cfg.CustomerID = "cust-1"
	cfg.MerchantReference = "order-77"

	native := NewNativeConfig(cfg, "session-token", "tx-1")

	assert.Equal(t, "session-token", native.SessionToken)
	assert.Equal(t, "tx-1", native.TransactionID)
	require.NotNil(t, native.CustomerID)
	assert.Equal(t, "cust-1", *native.CustomerID)
	assert.Equal(t, "order-77", native.MerchantReference)
	assert.Equal(t, DefaultApplePayMerchantIdentifier, native.AdditionValues[AdditionMerchantIdentifier])
}

func TestNewNativeConfig_EmptyCustomerIsNull(t *testing.T) {
	native := NewNativeConfig(testConfig(), "token", "tx-1")

	body, err := json.Marshal(native)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))

	value, present := decoded["customerId"]
	assert.True(t, present)
	assert.Nil(t, value)
}

func TestFailureResponse(t *testing.T) {
	resp := FailureResponse("tx-9", "No root view controller found")

	assert.Equal(t, "tx-9", resp.TransactionID)
	assert.Equal(t, ResponseStatusFailure, resp.Status)
	assert.False(t, resp.Succeeded())
}
