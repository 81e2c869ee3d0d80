package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWT = struct {
	ACCESS_COOKIE_NAME string
	ISSUER             string
}{
	ACCESS_COOKIE_NAME: "access_token",
	ISSUER:             "markersinorder",
}

const OperatorScope = "operator"

type JWTClaims struct {
	Scope     string `json:"scope"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}

// TokenResponse is returned by the login endpoint.
type TokenResponse struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}

var ErrInvalidToken = errors.New("invalid token")

// NewOperatorToken signs an HS256 access token for the collection operator.
func NewOperatorToken(subject, secret string, ttl time.Duration, now time.Time) (TokenResponse, error) {
	if secret == "" {
		return TokenResponse{}, errors.New("empty signing secret")
	}

	expiry := now.Add(ttl)
	claims := JWTClaims{
		Scope:     OperatorScope,
		TokenType: JWT.ACCESS_COOKIE_NAME,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    JWT.ISSUER,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return TokenResponse{}, fmt.Errorf("error signing token: %w", err)
	}
	return TokenResponse{Token: signed, Expiry: expiry}, nil
}

func ValidateJWTToken(tokenString string, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(JWT.ISSUER))

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || claims.Scope != OperatorScope {
		return nil, fmt.Errorf("%w: claims", ErrInvalidToken)
	}

	return claims, nil
}
