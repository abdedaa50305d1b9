package model

// SiteContent holds the admin-editable contact and footer fields served by
// the site-content endpoint.  Field names follow the backend columns so the
// payload maps one to one.
type SiteContent struct {
	ContactAddress  string   `json:"contact_address"`
	ContactPhone    string   `json:"contact_phone"`
	ContactEmail    string   `json:"contact_email"`
	ContactHours    string   `json:"contact_hours"`
	FooterDomains   []string `json:"footer_research_domains"`
	FooterTeamIntro string   `json:"footer_team_introduction"`
	FooterTeamName  string   `json:"footer_team_name"`
	FooterCopyright string   `json:"footer_copyright"`
}

// Merge overlays the non-empty fields of other onto c and returns the result.
// Used for partial updates where the caller edits only one section.
func (c SiteContent) Merge(other SiteContent) SiteContent {
	if other.ContactAddress != "" {
		c.ContactAddress = other.ContactAddress
	}
	if other.ContactPhone != "" {
		c.ContactPhone = other.ContactPhone
	}
	if other.ContactEmail != "" {
		c.ContactEmail = other.ContactEmail
	}
	if other.ContactHours != "" {
		c.ContactHours = other.ContactHours
	}
	if len(other.FooterDomains) > 0 {
		c.FooterDomains = other.FooterDomains
	}
	if other.FooterTeamIntro != "" {
		c.FooterTeamIntro = other.FooterTeamIntro
	}
	if other.FooterTeamName != "" {
		c.FooterTeamName = other.FooterTeamName
	}
	if other.FooterCopyright != "" {
		c.FooterCopyright = other.FooterCopyright
	}
	return c
}
