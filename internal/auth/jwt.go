package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lieyanc/studypk/internal"
)

var ErrInvalidCredentials = errors.New("auth: invalid credentials")

const sessionTTL = 30 * 24 * time.Hour

// JWTProvider signs session tokens after checking the household password
// against a bcrypt hash. With no password configured the dashboard is open:
// any login succeeds (first-run setup mode).
type JWTProvider struct {
	secret []byte
	hash   []byte
	logger internal.Logger
}

func NewJWTProvider(secret, passwordHash, plainPassword string, logger internal.Logger) (*JWTProvider, error) {
	p := &JWTProvider{logger: logger}

	if secret != "" {
		p.secret = []byte(secret)
	} else {
		// Ephemeral secret; sessions do not survive a restart.
		p.secret = make([]byte, 32)
		if _, err := rand.Read(p.secret); err != nil {
			return nil, err
		}
		logger.Warnf("auth: JWT_SECRET not set, sessions reset on restart")
	}

	switch {
	case passwordHash != "":
		p.hash = []byte(passwordHash)
	case plainPassword != "":
		h, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		p.hash = h
	default:
		logger.Warnf("auth: no password configured, dashboard is open")
	}

	return p, nil
}

func (p *JWTProvider) Login(ctx context.Context, password string) (string, error) {
	if p.hash != nil {
		if err := bcrypt.CompareHashAndPassword(p.hash, []byte(password)); err != nil {
			p.logger.Warnf("auth: rejected login attempt")
			return "", ErrInvalidCredentials
		}
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "household",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *JWTProvider) Verify(ctx context.Context, token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("auth: unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidCredentials
	}
	return nil
}

var _ Provider = (*JWTProvider)(nil)
