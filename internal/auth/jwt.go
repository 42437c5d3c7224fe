package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidToken = errors.New("Invalid or expired token")

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies admin session tokens with a shared HS256 secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

func (i *Issuer) GenerateJWT(email string) (string, error) {
	now := i.now()

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) VerifyJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))

	if err != nil || !token.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckCredentials compares the login against the configured admin account.
// Email matching ignores case.
func CheckCredentials(adminEmail, passwordHash, email, password string) bool {
	if adminEmail == "" || passwordHash == "" {
		return false
	}

	if !strings.EqualFold(strings.TrimSpace(email), adminEmail) {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}
