package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// ShortCodeBytes 随机字节数，编码后为 6 位十六进制
const ShortCodeBytes = 3

// GenerateShortCode 生成随机短码（小写十六进制）
func GenerateShortCode() (string, error) {
	b := make([]byte, ShortCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
