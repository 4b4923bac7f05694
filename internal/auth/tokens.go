/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes access from refresh tokens.
type TokenType string

const (
	AccessTokenType  TokenType = "access"
	RefreshTokenType TokenType = "refresh"

	BearerScheme = "Bearer"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims represents the JWT claims of a session token. Subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string    `json:"email,omitempty"`
	Type  TokenType `json:"type"`
}

// TokenManager signs and verifies HS256 tokens. Access and refresh tokens use
// separate secrets so one can never be replayed as the other.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// IssueAccess returns a signed access token for the user.
func (m *TokenManager) IssueAccess(userID, email string) (string, error) {
	token, _, err := m.issue(AccessTokenType, userID, email)
	return token, err
}

// IssueRefresh returns a signed refresh token and its expiry.
func (m *TokenManager) IssueRefresh(userID, email string) (string, time.Time, error) {
	return m.issue(RefreshTokenType, userID, email)
}

func (m *TokenManager) issue(typ TokenType, userID, email string) (string, time.Time, error) {
	secret, ttl := m.keyFor(typ)
	now := m.now().UTC()
	expiresAt := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
		Type:  typ,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, expiresAt, nil
}

// ParseAccess verifies an access token and returns its claims.
func (m *TokenManager) ParseAccess(raw string) (*Claims, error) {
	return m.parse(AccessTokenType, raw)
}

// ParseRefresh verifies a refresh token and returns its claims.
func (m *TokenManager) ParseRefresh(raw string) (*Claims, error) {
	return m.parse(RefreshTokenType, raw)
}

func (m *TokenManager) parse(typ TokenType, raw string) (*Claims, error) {
	secret, _ := m.keyFor(typ)
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Type != typ {
		return nil, ErrWrongTokenType
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

func (m *TokenManager) keyFor(typ TokenType) ([]byte, time.Duration) {
	if typ == RefreshTokenType {
		return m.refreshSecret, m.refreshTTL
	}
	return m.accessSecret, m.accessTTL
}
