package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/palspantry/pantry-backend/internal/modules/owner"
)

type service struct {
	owners     owner.Service
	jwtKey     []byte
	secretHash []byte // bcrypt hash of the shared API secret
}

// NewService creates a new auth service. secretHash is the bcrypt hash
// of the shared API secret; the plain secret is never configured.
func NewService(owners owner.Service, jwtKey, secretHash []byte) Service {
	return &service{owners: owners, jwtKey: jwtKey, secretHash: secretHash}
}

func (s *service) IssueToken(ctx context.Context, principalID int64, secret string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.secretHash, []byte(secret)); err != nil {
		return "", ErrInvalidCredentials
	}
	isOwner, err := s.owners.IsOwner(ctx, principalID)
	if err != nil {
		return "", err
	}
	if !isOwner {
		return "", ErrInvalidCredentials
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &jwt.StandardClaims{
		Subject:   strconv.FormatInt(principalID, 10),
		ExpiresAt: expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

func (s *service) ParseToken(tokenString string) (int64, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidCredentials
	}
	principalID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidCredentials
	}
	return principalID, nil
}
