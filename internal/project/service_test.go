package project

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rami151/laboissimlocal-sub000/internal/api"
)

func TestBulkReviewContinuesPastFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// The middle request fails; the others succeed.
		if strings.Contains(r.URL.Path, "/2/") {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"already reviewed"}`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	s := New(api.New(srv.URL))
	res := s.BulkReview(context.Background(), []string{"1", "2", "3"}, true, "cleanup")

	if got := calls.Load(); got != 3 {
		t.Fatalf("backend saw %d calls, want 3", got)
	}
	if res.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", res.Succeeded)
	}
	if len(res.Failures) != 1 || res.Failures[0].RequestID != "2" {
		t.Errorf("Failures = %+v", res.Failures)
	}
	if res.Err() == nil {
		t.Error("aggregate error missing")
	}
}

func TestBulkReviewAllSuccessHasNilErr(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	s := New(api.New(srv.URL))
	res := s.BulkReview(context.Background(), []string{"1", "2"}, false, "")
	if res.Err() != nil {
		t.Fatalf("Err() = %v", res.Err())
	}
	if res.Succeeded != 2 {
		t.Fatalf("Succeeded = %d", res.Succeeded)
	}
}

func TestRequestDeletionRequiresReason(t *testing.T) {
	s := New(api.New("http://127.0.0.1:0"))
	if err := s.RequestDeletion(context.Background(), "1", "   "); err == nil {
		t.Fatal("blank reason accepted")
	}
}

func TestDeleteDropsLocalRecordOnlyAfterConfirm(t *testing.T) {
	fail := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Write([]byte(`[{"id":"1","title":"T","description":"D","created_by":{"id":"1","name":"A"}}]`))
		case fail:
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	s := New(api.New(srv.URL))
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(context.Background(), "1"); err == nil {
		t.Fatal("expected delete failure")
	}
	if len(s.Projects()) != 1 {
		t.Fatal("failed delete removed the local record")
	}

	fail = false
	if err := s.Delete(context.Background(), "1"); err != nil {
		t.Fatal(err)
	}
	if len(s.Projects()) != 0 {
		t.Fatal("confirmed delete kept the local record")
	}
}
