package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Leeway - допуск на рассинхронизацию часов при проверке exp.
const Leeway = 30 * time.Second

var (
	ErrExpired          = errors.New("token expired")
	ErrMalformed        = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrMissingSubject   = errors.New("token missing subject")
	ErrNoCredentials    = errors.New("no credentials provided")
)

// Verifier - стратегия проверки токена, выбирается один раз при старте.
type Verifier interface {
	Verify(token string) (jwt.MapClaims, error)
}

// SecretVerifier проверяет HS256-подпись общим секретом.
// Audience и issuer намеренно не проверяются - токены выпускает
// фронтенд-сервис, который их не проставляет.
type SecretVerifier struct {
	secret []byte
}

func NewSecretVerifier(secret string) *SecretVerifier {
	return &SecretVerifier{secret: []byte(secret)}
}

func (v *SecretVerifier) Verify(tokenStr string) (jwt.MapClaims, error) {
	if tokenStr == "" {
		return nil, ErrMalformed
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithLeeway(Leeway),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		default:
			return nil, ErrInvalidSignature
		}
	}

	return claims, nil
}

// Subject достает идентификатор пользователя из проверенных claims.
func Subject(claims jwt.MapClaims) (string, error) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrMissingSubject
	}
	return sub, nil
}
