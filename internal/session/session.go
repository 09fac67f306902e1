// Package session tracks per-browser simulator state, most importantly the
// "reveal" flag that switches the dashboard from shopper view to the
// behind-the-scenes rule breakdown. The flag lives here, per session; the
// pricing engine never sees it.
package session

import (
	"errors"
	"time"
)

// CookieName is the browser cookie carrying the session ID.
const CookieName = "pricelens_session"

// ErrSessionNotFound is returned when the session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// Session is one browser session's simulator state.
type Session struct {
	ID        string    `json:"id"`
	Reveal    bool      `json:"reveal"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
}
