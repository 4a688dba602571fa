package utils

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const formTokenTTL = 2 * time.Hour

var formSecret = randomSecret()

// ErrFormTokenSubject is returned when a token was issued to someone else.
var ErrFormTokenSubject = errors.New("form token issued for a different session")

// SetSecret allows injecting the secret from config
func SetSecret(secret string) {
	if secret == "" {
		return
	}
	formSecret = []byte(secret)
}

type FormClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// GenerateFormToken signs a token embedded in a rendered form. subject is the
// logged-in username, or empty for the login form.
func GenerateFormToken(subject string) (string, error) {
	claims := FormClaims{
		Purpose: "form",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(formTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(formSecret)
}

// ValidateFormToken checks the signature, expiry and that the token belongs to
// subject.
func ValidateFormToken(tokenString, subject string) (*FormClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &FormClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return formSecret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*FormClaims)
	if !ok || !token.Valid || claims.Purpose != "form" {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject != subject {
		return nil, ErrFormTokenSubject
	}
	return claims, nil
}

func randomSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("utils: cannot generate form secret: " + err.Error())
	}
	return b
}
