package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlattenErrorBody(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"detail wins", `{"detail":"not found","title":["ignored"]}`, "not found"},
		{"error wins", `{"error":"invalid credentials"}`, "invalid credentials"},
		{
			"field errors concatenated in field order",
			`{"title":["This field is required."],"end_date":["Invalid date."]}`,
			"end_date: Invalid date.; title: This field is required.",
		},
		{"scalar field", `{"reason":"too short"}`, "reason: too short"},
		{"not json", `upstream exploded`, "upstream exploded"},
		{"whitespace trimmed", "  plain text \n", "plain text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := flattenErrorBody([]byte(tc.raw)); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDoMapsAuthStatusesToErrUnauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		c := New(srv.URL)
		err := c.doJSON(context.Background(), http.MethodGet, "/api/user/", nil, nil)
		srv.Close()
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("status %d: got %v, want ErrUnauthorized", status, err)
		}
	}
}

func TestDoWrapsOtherFailuresAsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"title": []string{"This field is required."}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.doJSON(context.Background(), http.MethodPost, "/api/projects", map[string]string{}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T (%v), want *APIError", err, err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d", apiErr.Status)
	}
	if apiErr.Message != "title: This field is required." {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestBearerTokenAttachedWhenSet(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/") // trailing slash must not double up
	c.SetToken("t1")
	if err := c.doJSON(context.Background(), http.MethodGet, "/api/user/", nil, nil); err != nil {
		t.Fatal(err)
	}
	if got != "Bearer t1" {
		t.Fatalf("Authorization = %q", got)
	}

	c.SetToken("")
	if err := c.doJSON(context.Background(), http.MethodGet, "/api/user/", nil, nil); err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Fatalf("cleared token still sent: %q", got)
	}
}

func TestLoginTokenLenientPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/email/":
			w.Write([]byte(`{"access":"t1"}`))
		case "/api/user/":
			// Numeric id and missing role must both be tolerated.
			w.Write([]byte(`{"id":42,"email":"m@x.org","is_superuser":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	access, err := c.LoginToken(context.Background(), "m@x.org", "pw")
	if err != nil || access != "t1" {
		t.Fatalf("LoginToken = %q, %v", access, err)
	}
	c.SetToken(access)
	me, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if me.ID != "42" {
		t.Errorf("ID = %q, want 42", me.ID)
	}
	if !me.IsSuperuser || !me.IsEffectiveAdmin() {
		t.Error("superuser flag lost in translation")
	}
}
