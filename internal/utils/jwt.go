package utils // token helpers shared by the demo backend handlers and middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT plus its expiry.  The demo backend only
// issues access tokens; the portal client never stores a refresh token, so
// none is modeled here.
type AccessToken struct {
	Token string    // the serialized JWT
	Exp   time.Time // UTC expiration time
}

// NewAccessToken signs an access token for a user.  The claims carry the
// subject id, the raw role, and the staff/superuser flags so that both the
// who-am-I endpoint and the admin middleware can work from the token alone.
func NewAccessToken(secret, userID, role string, isStaff, isSuperuser bool, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":          userID,
		"role":         role,
		"is_staff":     isStaff,
		"is_superuser": isSuperuser,
		"exp":          exp.Unix(),
		"iat":          time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
