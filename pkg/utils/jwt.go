package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// ErrEmptySecret is returned instead of signing or verifying with an empty HMAC key.
var ErrEmptySecret = errors.New("jwt secret is not configured")

// ContextKeyUser is the echo context key the auth middleware stores *TokenUser under.
const ContextKeyUser = "user"

type TokenUser struct {
	UserID   string
	Email    string
	IsSeller bool
}

func CreateJWTToken(userID string, email string, isSeller bool, jwtSecretKey string, ttl time.Duration) (string, error) {
	if jwtSecretKey == "" {
		return "", ErrEmptySecret
	}

	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = userID
	claims["email"] = email
	claims["isArtisan"] = isSeller
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecretKey))
}

// ParseJWTToken verifies signature and expiry; nothing is looked up server side.
func ParseJWTToken(tokenString string, jwtSecretKey string) (*TokenUser, error) {
	if jwtSecretKey == "" {
		return nil, ErrEmptySecret
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if _, ok := claims["exp"]; !ok {
		return nil, errors.New("token has no expiry")
	}

	userID, ok := claims["userID"].(string)
	if !ok || userID == "" {
		return nil, errors.New("token has no subject")
	}

	email, _ := claims["email"].(string)
	isSeller, _ := claims["isArtisan"].(bool)

	return &TokenUser{
		UserID:   userID,
		Email:    email,
		IsSeller: isSeller,
	}, nil
}

func ExtractTokenUser(c echo.Context) (*TokenUser, bool) {
	user, ok := c.Get(ContextKeyUser).(*TokenUser)
	return user, ok && user != nil
}
