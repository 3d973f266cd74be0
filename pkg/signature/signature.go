// Package signature подписывает тела запросов локального релея HMAC-SHA256
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// HeaderName заголовок с hex-подписью тела
const HeaderName = "X-Signature"

var (
	ErrEmptySecret      = errors.New("signature: empty secret")
	ErrInvalidSignature = errors.New("signature: invalid signature")
)

// Sign возвращает hex(HMAC-SHA256(body, secret))
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify пересчитывает подпись и сравнивает за постоянное время
func Verify(secret, body []byte, signature string) error {
	if len(secret) == 0 {
		return ErrEmptySecret
	}

	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}

	return nil
}
