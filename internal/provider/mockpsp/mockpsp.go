package mockpsp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
)

// モック決済プロバイダ。
// provider_refの採番とWebhook署名の計算・検証だけを担う。

const (
	ProviderName = "mock_psp"

	refPrefix = "mock_pi_"
)

// 推測不能なprovider_refを採番する。
// 外部プロバイダとの突き合わせIDであり、署名の材料にもなる。
func NewProviderRef() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return refPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}

// sha256("<providerRef>:<secret>") のhex
func Sign(providerRef string, secret string) string {
	sum := sha256.Sum256([]byte(providerRef + ":" + secret))
	return hex.EncodeToString(sum[:])
}

// 署名を定数時間で比較する
func VerifySignature(providerRef string, secret string, signature string) bool {
	expected := Sign(providerRef, secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
