package amwal

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/kevin07696/amwalpay-bridge/internal/domain"
)

// SecureHashKey is the request parameter that carries the signature itself.
// It is never part of the signed message.
const SecureHashKey = "secureHashValue"

// ComposeSignableString canonicalizes request parameters into the message Amwal signs:
// keys sorted ascending, empty values dropped, secureHashValue excluded,
// pairs rendered as key=value and joined with '&'.
func ComposeSignableString(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		if key == SecureHashKey || value == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(params[key])
	}
	return b.String()
}

// ComputeHMACSHA256Hex signs message with the hex-encoded key and returns the
// digest as uppercase hex
func ComputeHMACSHA256Hex(message, hexKey string) (string, error) {
	key, err := decodeKey(hexKey)
	if err != nil {
		return "", err
	}

	h := hmac.New(sha256.New, key)
	h.Write([]byte(message))

	return strings.ToUpper(hex.EncodeToString(h.Sum(nil))), nil
}

// ClearSecureHash composes params and signs them with the merchant secret
func ClearSecureHash(hexKey string, params map[string]string) (string, error) {
	return ComputeHMACSHA256Hex(ComposeSignableString(params), hexKey)
}

// VerifySecureHash reports whether signature matches the hash of params.
// Hex case is ignored.
func VerifySecureHash(hexKey string, params map[string]string, signature string) bool {
	expected, err := ClearSecureHash(hexKey, params)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(strings.ToUpper(signature)))
}

func decodeKey(hexKey string) ([]byte, error) {
	if hexKey == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeInvalidKeyFormat, "secret key is empty")
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, domain.WrapError(domain.ErrorCodeInvalidKeyFormat, "secret key is not valid hex", err)
	}
	return key, nil
}
