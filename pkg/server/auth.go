package server

import (
	"fmt"
	"time"

	"github.com/crystal-mush/mudbits/pkg/gamedb"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SetPassword hashes and stores a player's password.
func SetPassword(obj *gamedb.Object, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	obj.PasswordHash = hash
	return nil
}

// CheckPassword verifies a password against the stored hash.
func CheckPassword(obj *gamedb.Object, password string) bool {
	if len(obj.PasswordHash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(obj.PasswordHash, []byte(password)) == nil
}

// Claims are the JWT claims issued to web clients.
type Claims struct {
	Player gamedb.DBRef `json:"player"`
	Name   string       `json:"name"`
	jwt.RegisteredClaims
}

// AuthService issues and validates web session tokens.
type AuthService struct {
	secret []byte
	expiry time.Duration
}

// NewAuthService creates a token service. Expiry is in seconds.
func NewAuthService(secret string, expirySeconds int) *AuthService {
	if expirySeconds <= 0 {
		expirySeconds = 86400
	}
	return &AuthService{
		secret: []byte(secret),
		expiry: time.Duration(expirySeconds) * time.Second,
	}
}

// IssueToken signs a token for a logged-in player.
func (a *AuthService) IssueToken(player gamedb.DBRef, name string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Player: player,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "mudbits",
			Subject:   name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (a *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
