package services

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "starlog"

// AdminClaims 管理员 token
type AdminClaims struct {
	jwt.RegisteredClaims
}

// AdminAuth 单管理员账号：bcrypt 口令校验 + HS256 token
type AdminAuth struct {
	username      string
	passwordHash  []byte
	plainPassword string
	secret        []byte
	ttl           time.Duration
}

// NewAdminAuth passwordHash 优先；都为空时任何登录都会失败
func NewAdminAuth(username, passwordHash, plainPassword, secret string, ttl time.Duration) *AdminAuth {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &AdminAuth{
		username:      username,
		passwordHash:  []byte(passwordHash),
		plainPassword: plainPassword,
		secret:        []byte(secret),
		ttl:           ttl,
	}
}

// Configured 是否配置了管理员口令
func (a *AdminAuth) Configured() bool {
	return a.username != "" && (len(a.passwordHash) > 0 || a.plainPassword != "") && len(a.secret) > 0
}

func (a *AdminAuth) checkPassword(password string) bool {
	if len(a.passwordHash) > 0 {
		return bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	}
	if a.plainPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a.plainPassword), []byte(password)) == 1
}

// Login 校验用户名口令，成功返回签名后的 token 及过期时间
func (a *AdminAuth) Login(username, password string) (string, time.Time, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", time.Time{}, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if !a.Configured() {
		return "", time.Time{}, fmt.Errorf("%w: admin account is not configured", ErrUnauthorized)
	}
	userOK := subtle.ConstantTimeCompare([]byte(a.username), []byte(username)) == 1
	passOK := a.checkPassword(password)
	if !userOK || !passOK {
		return "", time.Time{}, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	now := time.Now()
	expiresAt := now.Add(a.ttl)
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.username,
			Issuer:    tokenIssuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken 返回 token 中的用户名
func (a *AdminAuth) ValidateToken(tokenString string) (string, error) {
	if len(a.secret) == 0 {
		return "", ErrUnauthorized
	}
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || claims.Subject != a.username {
		return "", fmt.Errorf("%w: invalid token claims", ErrUnauthorized)
	}
	return claims.Subject, nil
}
