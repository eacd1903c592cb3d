package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/soundbound/soundbound-server/model"
)

const (
	// Issuer is the issuer of the token.
	Issuer = "soundbound"
	// Signing key section. For now, only use on key.
	KeyID = "v1"
	// AccessTokenAudienceName is the audience name of the access token.
	AccessTokenAudienceName = "user.access-token"
	// AccessTokenDuration is the duration of the access token.
	AccessTokenDuration = 24 * time.Hour
	// AccessTokenCookieName is the cookie name of access token.
	AccessTokenCookieName = "soundbound.access-token"
)

type ClaimsMessage struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken generates an access token for the user. The subject is
// the user id; the role travels with the token so the policy check does not
// depend on a user lookup.
func GenerateAccessToken(username string, userID int32, role model.Role, expirationTime time.Time, secret []byte) (string, error) {
	expirationTimestamp := jwt.NewNumericDate(expirationTime)

	registeredClaims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{AccessTokenAudienceName},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Subject:   fmt.Sprint(userID),
		ExpiresAt: expirationTimestamp,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &ClaimsMessage{
		Name:             username,
		Role:             role.String(),
		RegisteredClaims: registeredClaims,
	})
	token.Header["kid"] = KeyID

	return token.SignedString(secret)
}
