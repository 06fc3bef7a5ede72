package util

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail verifies the email shape "local@domain.tld" after trimming spaces
// IsValidEmail 去除首尾空白后校验邮箱格式 local@domain.tld
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// MinPasswordLength passwords must be longer than 6 characters
// MinPasswordLength 密码长度必须大于 6
const MinPasswordLength = 7

// IsValidPassword checks the password length rule
// IsValidPassword 校验密码长度
func IsValidPassword(password string) bool {
	return len([]rune(password)) >= MinPasswordLength
}
