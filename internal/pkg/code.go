package pkg

import (
	"crypto/rand"
	"fmt"
)

// RandDigits 生成 n 位数字验证码，每一位独立取自 crypto/rand
func RandDigits(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = '0' + b%10
	}
	return string(buf), nil
}
