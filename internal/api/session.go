package api

import (
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"smartbooking/internal/db"
)

const (
	sessionDraftKey   = "reservation"
	sessionSummaryKey = "reservation_summary"
)

func init() {
	gob.Register(db.Reservation{})
}

func NewSessionManager(lifetime time.Duration, secure bool) *scs.SessionManager {
	sm := scs.New()
	sm.Lifetime = lifetime
	sm.Cookie.Persist = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secure
	return sm
}
