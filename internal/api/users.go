package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rami151/laboissimlocal-sub000/internal/model"
)

type teamMemberPayload struct {
	ID          json.Number    `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	FullName    string         `json:"full_name"`
	Role        string         `json:"role"`
	IsStaff     bool           `json:"is_staff"`
	IsSuperuser bool           `json:"is_superuser"`
	DateJoined  string         `json:"date_joined"`
	Profile     *model.Profile `json:"profile"`
}

// TeamMembers lists all active members.  The endpoint is public; the bearer
// token is sent when present but is not required.
func (c *Client) TeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	var payload []teamMemberPayload
	if err := c.doJSON(ctx, http.MethodGet, "/api/team-members/", nil, &payload); err != nil {
		return nil, err
	}
	members := make([]model.TeamMember, 0, len(payload))
	for _, p := range payload {
		joined := time.Time{}
		if p.DateJoined != "" {
			joined, _ = time.Parse(time.RFC3339, p.DateJoined)
		}
		members = append(members, model.TeamMember{
			ID:          p.ID.String(),
			Username:    p.Username,
			Email:       p.Email,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			FullName:    p.FullName,
			Role:        p.Role,
			IsStaff:     p.IsStaff,
			IsSuperuser: p.IsSuperuser,
			DateJoined:  joined,
			Profile:     p.Profile,
		})
	}
	return members, nil
}

type roleReq struct {
	Role string `json:"role"`
}

// UpdateUserRole changes another user's role through the admin endpoint.
func (c *Client) UpdateUserRole(ctx context.Context, userID, role string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/admin/update-user-role/"+userID+"/", roleReq{Role: role}, nil)
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateUserStatus sets another user's account status (active/banned)
// through the admin endpoint.
func (c *Client) UpdateUserStatus(ctx context.Context, userID, status string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/admin/update-user-status/"+userID+"/", statusReq{Status: status}, nil)
}

// DeleteUser asks the backend to remove an account.  The roster is patched
// only after the server confirms.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/users/"+userID+"/", nil, nil)
}
