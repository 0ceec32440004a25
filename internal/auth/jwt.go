package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// tokenUse discriminates access tokens from refresh tokens so one can never
// be presented where the other is expected.
type tokenUse string

const (
	useAccess  tokenUse = "access"
	useRefresh tokenUse = "refresh"
)

type claims struct {
	TokenUse tokenUse `json:"token_use"`
	jwt.RegisteredClaims
}

// Manager issues and verifies the HS256 token pair for one signing secret.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// TokenPair is what a successful login or refresh hands back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
}

func (m *Manager) IssuePair(userID uuid.UUID) (TokenPair, error) {
	access, err := m.issue(userID, useAccess, m.accessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issuing access token: %w", err)
	}

	refresh, err := m.issue(userID, useRefresh, m.refreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issuing refresh token: %w", err)
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessTTL.Seconds()),
	}, nil
}

func (m *Manager) issue(userID uuid.UUID, use tokenUse, ttl time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString(m.secret)
}

// VerifyAccess returns the user id carried by a valid access token.
func (m *Manager) VerifyAccess(tokenString string) (uuid.UUID, error) {
	return m.verify(tokenString, useAccess)
}

// VerifyRefresh returns the user id carried by a valid refresh token.
func (m *Manager) VerifyRefresh(tokenString string) (uuid.UUID, error) {
	return m.verify(tokenString, useRefresh)
}

func (m *Manager) verify(tokenString string, use tokenUse) (uuid.UUID, error) {
	var c claims

	_, err := jwt.ParseWithClaims(tokenString, &c,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrExpiredToken
		}

		return uuid.Nil, ErrInvalidToken
	}

	if c.TokenUse != use {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
