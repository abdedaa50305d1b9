package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
)

type tokenReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// LoginToken exchanges credentials for a bearer token at the email token
// endpoint.  It does not install the token; the session store decides that
// after identity resolution succeeds.
func (c *Client) LoginToken(ctx context.Context, email, password string) (string, error) {
	var out tokenResp
	if err := c.doJSON(ctx, http.MethodPost, "/api/token/email/", tokenReq{Email: email, Password: password}, &out); err != nil {
		return "", err
	}
	return out.Access, nil
}

// userPayload mirrors the backend user serializer.  The id arrives as a JSON
// number from the original backend and as a string from the demo one, so it
// is decoded leniently.  role/status/verified are absent on the original
// backend; zero values are normalized in toIdentity.
type userPayload struct {
	ID          json.Number `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	FullName    string      `json:"full_name"`
	Role        string      `json:"role"`
	Status      string      `json:"status"`
	Verified    *bool       `json:"verified"`
	IsStaff     bool        `json:"is_staff"`
	IsSuperuser bool        `json:"is_superuser"`
	DateJoined  string      `json:"date_joined"`
}

func (p userPayload) toIdentity() model.Identity {
	name := p.FullName
	if name == "" {
		name = p.Username
	}
	status := p.Status
	if status == "" {
		status = model.StatusActive
	}
	verified := true
	if p.Verified != nil {
		verified = *p.Verified
	}
	joined := time.Now().UTC()
	if p.DateJoined != "" {
		if t, err := time.Parse(time.RFC3339, p.DateJoined); err == nil {
			joined = t
		}
	}
	return model.Identity{
		ID:          p.ID.String(),
		Email:       p.Email,
		Name:        name,
		Role:        p.Role,
		Status:      status,
		Verified:    verified,
		IsStaff:     p.IsStaff,
		IsSuperuser: p.IsSuperuser,
		DateJoined:  joined,
	}
}

// CurrentUser resolves the identity behind the installed bearer token via
// the who-am-I endpoint.
func (c *Client) CurrentUser(ctx context.Context) (model.Identity, error) {
	var out userPayload
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/", nil, &out); err != nil {
		return model.Identity{}, err
	}
	return out.toIdentity(), nil
}

// Profile returns the current user's profile, creating an empty one server
// side if none exists yet.
func (c *Client) Profile(ctx context.Context) (model.Profile, error) {
	var out model.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/profile/", nil, &out); err != nil {
		return model.Profile{}, err
	}
	return out, nil
}

// UpdateProfile partially updates the current user's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	var out model.Profile
	if err := c.doJSON(ctx, http.MethodPut, "/api/user/profile/", p, &out); err != nil {
		return model.Profile{}, err
	}
	return out, nil
}
