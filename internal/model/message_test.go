package model

import "testing"

func TestConversationIDSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"1", "2"},
		{"42", "7"},
		{"abc", "abd"},
		{"u-10", "u-2"}, // lexicographic, not numeric
	}
	for _, p := range pairs {
		ab := ConversationID(p[0], p[1])
		ba := ConversationID(p[1], p[0])
		if ab != ba {
			t.Errorf("ConversationID(%q,%q)=%q != ConversationID(%q,%q)=%q",
				p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestConversationIDFormat(t *testing.T) {
	if got := ConversationID("9", "3"); got != "conv_3_9" {
		t.Fatalf("got %q, want conv_3_9", got)
	}
	// Self-conversation is well defined even if the UI never offers it.
	if got := ConversationID("5", "5"); got != "conv_5_5" {
		t.Fatalf("got %q, want conv_5_5", got)
	}
}

func TestSiteContentMerge(t *testing.T) {
	base := SiteContent{
		ContactEmail:   "team@example.org",
		ContactPhone:   "111",
		FooterTeamName: "Research Team",
	}
	merged := base.Merge(SiteContent{ContactPhone: "222", FooterDomains: []string{"biology"}})
	if merged.ContactPhone != "222" {
		t.Errorf("ContactPhone = %q, want 222", merged.ContactPhone)
	}
	if merged.ContactEmail != "team@example.org" {
		t.Errorf("empty field overwrote ContactEmail: %q", merged.ContactEmail)
	}
	if merged.FooterTeamName != "Research Team" {
		t.Errorf("FooterTeamName lost: %q", merged.FooterTeamName)
	}
	if len(merged.FooterDomains) != 1 || merged.FooterDomains[0] != "biology" {
		t.Errorf("FooterDomains = %v", merged.FooterDomains)
	}
}
