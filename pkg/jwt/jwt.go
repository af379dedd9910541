package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// No hay modelo de usuarios: el token identifica al operador por su subject
// y lo emite cmd/token con el secreto compartido.

var (
	ErrEmptySecret  = errors.New("jwt: secret vacío")
	ErrEmptySubject = errors.New("jwt: subject vacío")
)

// Generate firma con HS256 un token para subject que vence en expMinutes.
func Generate(secret, subject, issuer string, expMinutes int) (string, error) {
	switch {
	case secret == "":
		return "", ErrEmptySecret
	case subject == "":
		return "", ErrEmptySubject
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse verifica firma HS256 y expiración, y devuelve el subject.
func Parse(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("jwt: %w", err)
	}
	if claims.Subject == "" {
		return "", ErrEmptySubject
	}
	return claims.Subject, nil
}
