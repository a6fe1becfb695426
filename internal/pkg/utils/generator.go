package utils

import (
	"fmt"
	"strings"
	"tabib-service/internal/pkg/constvars"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateLedgerPaymentID produces the external payment id for wallet
// methods, e.g. "MM_7f9c...".
func GenerateLedgerPaymentID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateVideoSessionToken signs a short-lived token that gates the video
// room, so the call link is unguessable even if the room name leaks.
func GenerateVideoSessionToken(roomName, secret string, expiryHours int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"room": roomName,
		"exp":  time.Now().Add(time.Duration(expiryHours) * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GenerateVideoCallLink builds the opaque consultation video link:
// <base>/teleconsult-<uuid>?token=<jwt>.
func GenerateVideoCallLink(baseURL, secret string, expiryHours int) (string, error) {
	roomName := constvars.VideoCallRoomPrefix + uuid.NewString()
	token, err := GenerateVideoSessionToken(roomName, secret, expiryHours)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s?token=%s", strings.TrimRight(baseURL, "/"), roomName, token), nil
}
