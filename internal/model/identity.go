package model

import (
	"strings"
	"time"
)

// Role values accepted for an identity.  The backend historically stored
// admin rights in two different ways (an explicit role string vs. the
// is_staff/is_superuser flags), which is why EffectiveRole exists.
const (
	RoleMember   = "member"
	RoleAdmin    = "admin"
	RoleTeamLead = "team_lead"
)

// Account status values.  Role and status are independently settable: a
// banned identity keeps its role but loses session validity.
const (
	StatusActive  = "active"
	StatusBanned  = "banned"
	StatusPending = "pending"
)

// Identity represents one person known to the portal.  Identities are
// created server side when an account request is approved; the client never
// deletes an Identity record itself, it requests deletion and reflects the
// server's answer.
type Identity struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	Verified    bool      `json:"verified"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	DateJoined  time.Time `json:"date_joined"`
	LastLogin   time.Time `json:"last_login,omitzero"`
}

// ValidRole reports whether s is one of the known role names.
func ValidRole(s string) bool {
	switch strings.TrimSpace(s) {
	case RoleMember, RoleAdmin, RoleTeamLead:
		return true
	}
	return false
}

// EffectiveRole resolves the role that authorization decisions are made
// against.  Precedence, highest first:
//
//  1. is_superuser  -> admin
//  2. is_staff      -> admin
//  3. role == admin -> admin
//  4. otherwise the raw role field (member, team_lead, or whatever the
//     backend sent; an empty role degrades to member).
//
// The three-way OR widens admin rights across both backend conventions and
// route guards depend on it, so it must not be narrowed.
func (i Identity) EffectiveRole() string {
	if i.IsSuperuser || i.IsStaff || i.Role == RoleAdmin {
		return RoleAdmin
	}
	if i.Role == "" {
		return RoleMember
	}
	return i.Role
}

// IsEffectiveAdmin is the boolean form of EffectiveRole.
func (i Identity) IsEffectiveAdmin() bool {
	return i.EffectiveRole() == RoleAdmin
}

// Profile carries the optional biography fields attached to an identity.
// All fields may be empty; the backend creates an empty profile on demand.
type Profile struct {
	Phone        string `json:"phone,omitempty"`
	Bio          string `json:"bio,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	Location     string `json:"location,omitempty"`
	Institution  string `json:"institution,omitempty"`
	Website      string `json:"website,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
	Twitter      string `json:"twitter,omitempty"`
	GitHub       string `json:"github,omitempty"`
}

// TeamMember is the roster entry returned by the team-members endpoint.  It
// mirrors the backend user serializer, flags included, plus the optional
// profile block.
type TeamMember struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	DateJoined  time.Time `json:"date_joined"`
	Profile     *Profile  `json:"profile,omitempty"`
}
