package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the session cookie.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateSessionJWT signs a session token for userID carrying its role.
// It returns the token and its expiry time.
func GenerateSessionJWT(userID, role, secret, issuer string, expiryDuration time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(expiryDuration)
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseSessionJWT validates the signature, the standard claims and the issuer.
func ParseSessionJWT(tokenString, secret, issuer string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, errors.New("session token misses subject or role")
	}
	return claims, nil
}
