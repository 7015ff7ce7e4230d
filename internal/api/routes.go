package api

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/nosurf"
	"go.uber.org/zap"

	"smartbooking/internal/auth"
	apperrors "smartbooking/internal/errors"
)

type Router struct {
	Users     *UserReservationHandler
	Admins    *AdminHandler
	AdminAuth *AdminAuthHandler
	Tokens    *auth.Tokens
	Session   *scs.SessionManager
	Limiter   *RateLimiter
	Log       *zap.Logger
	Secure    bool
}

// Handler wires routes and middleware. From the outside in: request id,
// access log, panic recovery, session, CSRF.
func (rt Router) Handler() http.Handler {
	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/csrf-token", rt.Users.CSRFToken).Methods(http.MethodGet)
	r.HandleFunc("/rooms", rt.Users.ListRooms).Methods(http.MethodGet)
	r.HandleFunc("/search-availability-json", rt.Limiter.Limit(rt.Users.AvailabilityJSON)).Methods(http.MethodPost)
	r.HandleFunc("/search-availability", rt.Users.PostAvailability).Methods(http.MethodPost)
	r.HandleFunc("/choose-room/{id:[0-9]+}", rt.Users.ChooseRoom).Methods(http.MethodGet)
	r.HandleFunc("/book-room", rt.Users.BookRoom).Methods(http.MethodGet)
	r.HandleFunc("/make-reservation", rt.Users.Reservation).Methods(http.MethodGet)
	r.HandleFunc("/make-reservation", rt.Users.PostReservation).Methods(http.MethodPost)
	r.HandleFunc("/reservation-summary", rt.Users.ReservationSummary).Methods(http.MethodGet)

	r.HandleFunc("/admin/login", rt.AdminAuth.Login).Methods(http.MethodPost)

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(rt.Tokens, rt.Log))
	admin.HandleFunc("/users", rt.AdminAuth.CreateUserAdmin).Methods(http.MethodPost)
	admin.HandleFunc("/reservations", rt.Admins.ListReservations).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id:[0-9]+}", rt.Admins.GetReservation).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id:[0-9]+}", rt.Admins.UpdateReservation).Methods(http.MethodPut)
	admin.HandleFunc("/reservations/{id:[0-9]+}", rt.Admins.DeleteReservation).Methods(http.MethodDelete)
	admin.HandleFunc("/reservations/{id:[0-9]+}/process", rt.Admins.ProcessReservation).Methods(http.MethodPost)
	admin.HandleFunc("/rooms/{id:[0-9]+}/restrictions", rt.Admins.RoomRestrictions).Methods(http.MethodGet)
	admin.HandleFunc("/rooms/{id:[0-9]+}/blocks", rt.Admins.BlockRoom).Methods(http.MethodPost)
	admin.HandleFunc("/blocks/{id:[0-9]+}", rt.Admins.DeleteBlock).Methods(http.MethodDelete)

	stdLog := zap.NewStdLog(rt.Log.Named("http"))

	var h http.Handler = rt.csrf(r)
	h = rt.Session.LoadAndSave(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(stdLog), handlers.PrintRecoveryStack(true))(h)
	h = handlers.CombinedLoggingHandler(stdLog.Writer(), h)
	return RequestID(h)
}

// csrf protects the form posts. The admin API authenticates with bearer
// tokens and is exempt.
func (rt Router) csrf(next http.Handler) http.Handler {
	csrf := nosurf.New(next)
	csrf.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		Secure:   rt.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	csrf.ExemptRegexp("^/admin/")
	csrf.SetFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rt.Log.Warn("CSRF check failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(nosurf.Reason(r)))
		apperrors.WriteJSON(w, http.StatusBadRequest, "Invalid CSRF token")
	}))
	return csrf
}
