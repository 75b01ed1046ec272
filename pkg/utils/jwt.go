package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

func CreateJWTToken(ownerID string, userID string, jwtSecretKey string) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["owner_id"] = ownerID
	claims["user_id"] = userID
	claims["exp"] = time.Now().Add(time.Hour * 24).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecretKey))
}

// ExtractTokenPrincipal reads the owner and acting user from the token stored by the JWT
// middleware. ok is false when the token is missing, invalid or lacks either claim.
func ExtractTokenPrincipal(c echo.Context) (ownerID string, userID string, ok bool) {
	user, isToken := c.Get("user").(*jwt.Token)
	if !isToken || !user.Valid {
		return "", "", false
	}

	claims, isMap := user.Claims.(jwt.MapClaims)
	if !isMap {
		return "", "", false
	}

	ownerID, _ = claims["owner_id"].(string)
	userID, _ = claims["user_id"].(string)

	return ownerID, userID, ownerID != "" && userID != ""
}
