package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// AuthService checks the configured login credentials and mints the signed
// tokens that gate the chat and upload endpoints.
type AuthService struct {
	username string
	password string
	secret   []byte
}

func NewAuthService(username, password, secret string) *AuthService {
	return &AuthService{
		username: username,
		password: password,
		secret:   []byte(secret),
	}
}

func (s *AuthService) Authenticate(username, password string) bool {
	return username == s.username && password == s.password
}

func (s *AuthService) GenerateToken(username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken returns the username carried by a valid token.
func (s *AuthService) VerifyToken(tokenString string) (string, bool) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	username, _ := claims["username"].(string)
	return username, username != ""
}
