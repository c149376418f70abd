// Package auth issues and verifies the development backend's HS256 tokens.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/colisroute/colis/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims plus the account role. The subject is
// the decimal user id.
type Claims struct {
	jwt.RegisteredClaims
	Role common.Role `json:"role"`
}

// UserID parses the subject.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrInvalidToken
	}
	return id, nil
}

func GenerateToken(userID int64, role common.Role, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    "colis-devserver",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Role: role,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired, anything else invalid common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// GoogleIdentity is what the backend reads from a Google ID token.
type GoogleIdentity struct {
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

// InspectGoogleIDToken reads the identity claims of a Google ID token
// without verifying its signature. Only the development backend does this.
func InspectGoogleIDToken(idToken string) (GoogleIdentity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return GoogleIdentity{}, common.ErrInvalidToken
	}

	str := func(k string) string {
		s, _ := claims[k].(string)
		return s
	}
	id := GoogleIdentity{
		Email:     str("email"),
		FirstName: str("given_name"),
		LastName:  str("family_name"),
		Picture:   str("picture"),
	}
	if id.Email == "" {
		return GoogleIdentity{}, common.ErrInvalidToken
	}
	return id, nil
}
