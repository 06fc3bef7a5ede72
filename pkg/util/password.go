package util

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost bcrypt cost factor
// PasswordCost bcrypt 计算成本
const PasswordCost = 10

// PasswordMaxBytes bcrypt only reads the first 72 bytes of its input
// PasswordMaxBytes bcrypt 只使用输入的前 72 字节
const PasswordMaxBytes = 72

// passwordBytes truncates to PasswordMaxBytes, bytes beyond it never affect the hash
func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > PasswordMaxBytes {
		b = b[:PasswordMaxBytes]
	}
	return b
}

// GeneratePasswordHash generates bcrypt hash of a password
// GeneratePasswordHash 生成密码的bcrypt哈希值，超过 72 字节的部分被截断
func GeneratePasswordHash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(passwordBytes(password), PasswordCost)
	return string(bytes), err
}

// CheckPasswordHash verifies whether password matches the hash
// CheckPasswordHash 验证密码与哈希值是否匹配
func CheckPasswordHash(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(password))
	return err == nil
}

// PasswordSalt extracts the 22 character salt embedded in a bcrypt hash ("$2a$10$" + salt + digest)
// PasswordSalt 提取 bcrypt 哈希中内嵌的 22 位盐值
func PasswordSalt(hash string) string {
	if len(hash) < 29 || hash[0] != '$' {
		return ""
	}
	return hash[7:29]
}
