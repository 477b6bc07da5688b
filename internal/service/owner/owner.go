// Package owner tracks which users unlocked owner mode with the configured
// passphrase. Owner mode gates commands that change process-wide state.
package owner

import (
	"crypto/subtle"
	"strings"
	"sync"
	"time"
)

type Registry struct {
	passphrase string
	now        func() time.Time

	mu       sync.Mutex
	unlocked map[string]time.Time
}

// New returns a registry for passphrase. An empty passphrase disables owner
// mode and every user is treated as the owner.
func New(passphrase string) *Registry {
	return &Registry{
		passphrase: normalize(passphrase),
		now:        time.Now,
		unlocked:   make(map[string]time.Time),
	}
}

// Required reports whether a passphrase is configured.
func (r *Registry) Required() bool {
	return r.passphrase != ""
}

// Unlock enables owner mode for userID when phrase matches. Surrounding
// whitespace and letter case are ignored.
func (r *Registry) Unlock(userID, phrase string) bool {
	if !r.Required() {
		return true
	}
	if subtle.ConstantTimeCompare([]byte(normalize(phrase)), []byte(r.passphrase)) != 1 {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.unlocked[userID] = r.now()
	return true
}

func (r *Registry) Lock(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.unlocked, userID)
}

// Enabled reports whether userID may use owner commands.
func (r *Registry) Enabled(userID string) bool {
	if !r.Required() {
		return true
	}
	_, ok := r.Since(userID)
	return ok
}

// Since returns when userID last unlocked owner mode.
func (r *Registry) Since(userID string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	at, ok := r.unlocked[userID]
	return at, ok
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
