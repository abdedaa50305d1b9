// Package store implements the persisted local mirror: a string-keyed
// key/value store holding JSON-serialized collections.  The mirror is an
// offline/demo fallback, never an authoritative store.  Every mutation
// re-serializes an entire collection and overwrites its key, so the last
// writer wins; there is no merge and no concurrency token.
package store

import (
	"encoding/json"
	"log"
)

// Well-known mirror keys.  These match the keys the portal has always used,
// so an existing mirror file remains readable.
const (
	KeyToken            = "token"
	KeyUser             = "user"
	KeyUsers            = "users"
	KeyMessages         = "messages"
	KeyAccountRequests  = "accountRequests"
	KeyInternalMessages = "internalMessages"
	KeySiteContent      = "siteContent"
)

// Mirror is the minimal contract the state containers need.  Get reports a
// miss with ok=false; Set and Delete are best effort and never fail loudly.
type Mirror interface {
	Get(key string) (value string, ok bool)
	Set(key, value string)
	Delete(key string)
}

// LoadJSON reads key from the mirror and unmarshals it into out.  A missing
// key or a corrupt value both count as a miss; corrupt values are logged and
// otherwise ignored so a damaged mirror never breaks startup.
func LoadJSON(m Mirror, key string, out any) bool {
	raw, ok := m.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("mirror: discarding corrupt value for %q: %v", key, err)
		return false
	}
	return true
}

// SaveJSON serializes v and overwrites key.  Marshal failures are logged and
// dropped; the in-memory state remains the source of truth for the session.
func SaveJSON(m Mirror, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("mirror: marshal %q failed: %v", key, err)
		return
	}
	m.Set(key, string(raw))
}
