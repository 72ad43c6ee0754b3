package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminCookieName is the signed session cookie set after admin login.
const AdminCookieName = "slyde_admin_session"

const adminSessionTTL = 7 * 24 * time.Hour

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssueUserToken generates the studio bearer token for a signed-in user.
func IssueUserToken(userID, email, name, picture string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    "user",
		"name":    name,
		"picture": picture,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// IssueAdminSession mints the admin cookie value: an HS256 JWT with a 7-day
// expiry rather than a reversible encoding of the password.
func IssueAdminSession(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"exp":   time.Now().Add(adminSessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidateAdminSession checks the cookie value and returns the admin email.
func ValidateAdminSession(value string) (string, error) {
	token, err := jwt.Parse(value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired admin session")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	if role, _ := claims["role"].(string); role != "admin" {
		return "", errors.New("not an admin session")
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", errors.New("admin session missing email")
	}
	return email, nil
}
