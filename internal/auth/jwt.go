// Package auth выпускает и проверяет JWT (access + refresh) и хеширует пароли.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenExpired — подпись верна, но срок действия токена истёк.
var ErrTokenExpired = errors.New("срок действия токена истёк")

// Claims — полезная нагрузка наших токенов.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Pair — пара токенов, которую получает клиент после входа.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenManager подписывает access- и refresh-токены разными секретами.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// Issue выпускает новую пару токенов для пользователя.
func (m *TokenManager) Issue(userID int64) (Pair, error) {
	access, err := m.sign(userID, m.accessSecret, m.accessTTL)
	if err != nil {
		return Pair{}, fmt.Errorf("ошибка подписи access-токена: %w", err)
	}
	refresh, err := m.sign(userID, m.refreshSecret, m.refreshTTL)
	if err != nil {
		return Pair{}, fmt.Errorf("ошибка подписи refresh-токена: %w", err)
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccess проверяет access-токен.
func (m *TokenManager) ParseAccess(token string) (*Claims, error) {
	return m.parse(token, m.accessSecret)
}

// ParseRefresh проверяет refresh-токен.
// Для истёкшего токена возвращает claims вместе с ErrTokenExpired,
// чтобы вызывающий мог очистить его у владельца.
func (m *TokenManager) ParseRefresh(token string) (*Claims, error) {
	return m.parse(token, m.refreshSecret)
}

func (m *TokenManager) sign(userID int64, secret []byte, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti делает токены уникальными даже при выпуске в одну секунду
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (m *TokenManager) parse(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && claims.UserID != 0 {
			return claims, ErrTokenExpired
		}
		return nil, err
	}
	if !parsed.Valid || claims.UserID == 0 {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
