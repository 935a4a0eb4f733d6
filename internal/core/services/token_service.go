package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/curator/internal/core/domain"
	"github.com/vncsmyrnk/curator/internal/core/ports"
)

type tokenService struct {
	signingKey []byte
	ttl        time.Duration
}

func NewTokenService(signingKey []byte, ttl time.Duration) ports.TokenService {
	return &tokenService{
		signingKey: signingKey,
		ttl:        ttl,
	}
}

func (s *tokenService) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signingKey)
}

func (s *tokenService) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, domain.ErrTokenExpired
		}
		return uuid.Nil, domain.ErrTokenInvalid
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, domain.ErrTokenInvalid
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, domain.ErrTokenInvalid
	}
	return userID, nil
}
