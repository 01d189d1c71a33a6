package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed structure, or expiry. Callers never learn which.
var ErrInvalidToken = errors.New("auth: invalid token")

const bcryptCost = 10

// HashPassword produces a salted bcrypt digest of plaintext. The salt
// is embedded in the digest, nothing else needs storing.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches a stored digest.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

type Config struct {
	Secret []byte
	TTL    time.Duration
}

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Auth issues and verifies the bearer tokens guarding every protected
// route.
type Auth struct {
	config Config
	now    func() time.Time
}

// New builds an Auth from config. now may be nil, in which case
// time.Now is used; tests inject a fixed clock.
func New(config Config, now func() time.Time) *Auth {
	if now == nil {
		now = time.Now
	}
	return &Auth{config: config, now: now}
}

// IssueToken signs a token carrying userID, expiring TTL from now.
func (a *Auth) IssueToken(userID string) (string, error) {
	issued := a.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(a.config.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.config.Secret)
}

// VerifyToken validates signature and expiry and returns the embedded
// user id. Any failure is ErrInvalidToken.
func (a *Auth) VerifyToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.config.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))

	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
