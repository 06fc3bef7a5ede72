package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// 默认 Token 签发者
const DefaultTokenIssuer = "fast-note-service"

// DefaultTokenExpiry session lifetime when none is configured
const DefaultTokenExpiry = 7 * 24 * time.Hour

// UserTokenKey gin context key of the verified session
const UserTokenKey = "user_token"

// ErrEmptySecret 签名密钥为空
var ErrEmptySecret = errors.New("token secret key is empty")

// TokenConfig 定义 Token 管理器的配置
type TokenConfig struct {
	SecretKey string        // JWT 签名密钥
	Expiry    time.Duration // Token 过期时间，默认 7 天
	Issuer    string        // Token 签发者
}

// TokenManager issues and verifies session tokens
// TokenManager 定义会话 Token 管理接口
type TokenManager interface {
	// Issue signs a token carrying uid; every token expires after Expiry
	Issue(uid int64) (string, error)
	// Verify never returns an error: anything that is not a valid unexpired token is false
	Verify(token string) (*UserEntity, bool)
	Expiry() time.Duration
}

// tokenManager 实现 TokenManager 接口
type tokenManager struct {
	config TokenConfig
}

// NewTokenManager 创建一个新的 TokenManager 实例，密钥为空时返回错误
func NewTokenManager(cfg TokenConfig) (TokenManager, error) {
	if cfg.SecretKey == "" {
		return nil, ErrEmptySecret
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = DefaultTokenExpiry
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	return &tokenManager{config: cfg}, nil
}

// UserEntity claims carried by a session token: {"id": uid} plus registered claims
// UserEntity 会话 Token 中的声明
type UserEntity struct {
	UID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Issue 签发一个新的 JWT Token
func (t *tokenManager) Issue(uid int64) (string, error) {
	now := time.Now()
	claims := &UserEntity{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.config.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(t.config.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// Verify 校验 Token，任何失败都返回 false
func (t *tokenManager) Verify(token string) (*UserEntity, bool) {
	if token == "" {
		return nil, false
	}
	claims := &UserEntity{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(t.config.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || parsed == nil || !parsed.Valid {
		return nil, false
	}
	if claims.UID <= 0 {
		return nil, false
	}
	return claims, true
}

func (t *tokenManager) Expiry() time.Duration {
	return t.config.Expiry
}

// GetUID extracts the user ID from the request context.
// GetUID 从请求上下文获取用户 ID，未登录返回 0
func GetUID(ctx *gin.Context) (out int64) {
	user, exist := ctx.Get(UserTokenKey)
	if exist {
		if userEntity, ok := user.(*UserEntity); ok {
			out = userEntity.UID
		}
	}
	return
}
