package api

import (
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/justinas/nosurf"
	"go.uber.org/zap"

	"smartbooking/internal/db"
	"smartbooking/internal/entities"
	apperrors "smartbooking/internal/errors"
	"smartbooking/internal/service"
	"smartbooking/internal/utils"
)

type UserReservationHandler struct {
	Service BookingService
	Session *scs.SessionManager
	log     *zap.Logger
}

func NewUserReservationHandler(svc BookingService, session *scs.SessionManager, log *zap.Logger) *UserReservationHandler {
	return &UserReservationHandler{Service: svc, Session: session, log: log}
}

// CSRFToken hands out the token to send back as the csrf_token form field.
// The matching cookie is set by the CSRF middleware.
func (h *UserReservationHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CSRFTokenResponse{Token: nosurf.Token(r)})
}

func (h *UserReservationHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Service.ListRooms(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

// AvailabilityJSON answers the availability dialog. Every answer is a 200
// with ok set, so the dialog can tell "not available" from a broken server.
func (h *UserReservationHandler) AvailabilityJSON(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusOK, entities.AvailabilityResponse{OK: false, Message: "Internal server error"})
		return
	}

	sd := r.Form.Get("check_in_date")
	ed := r.Form.Get("check_out_date")
	roomIDParam := r.Form.Get("room_id")

	start, end, err := utils.ParseStay(sd, ed)
	if err != nil {
		writeJSON(w, http.StatusOK, entities.AvailabilityResponse{OK: false, Message: "Invalid dates"})
		return
	}
	roomID, err := strconv.Atoi(roomIDParam)
	if err != nil {
		writeJSON(w, http.StatusOK, entities.AvailabilityResponse{OK: false, Message: "Invalid room id"})
		return
	}

	available, err := h.Service.CheckRoomAvailability(r.Context(), roomID, start, end)
	if err != nil {
		h.log.Error("availability query failed",
			zap.Int("room_id", roomID),
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err))
		writeJSON(w, http.StatusOK, entities.AvailabilityResponse{OK: false, Message: "Error querying database"})
		return
	}

	writeJSON(w, http.StatusOK, entities.AvailabilityResponse{
		OK:        available,
		RoomID:    roomIDParam,
		StartDate: sd,
		EndDate:   ed,
	})
}

// PostAvailability lists the free rooms and starts a draft for those dates.
func (h *UserReservationHandler) PostAvailability(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		apperrors.Write(w, apperrors.ErrBadRequest("Invalid form"))
		return
	}
	sd, ed := r.Form.Get("start_date"), r.Form.Get("end_date")
	start, end, err := utils.ParseStay(sd, ed)
	if err != nil {
		apperrors.Write(w, apperrors.ErrBadRequest("Invalid dates"))
		return
	}

	rooms, err := h.Service.AvailableRooms(r.Context(), start, end)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(rooms) == 0 {
		apperrors.WriteJSON(w, http.StatusNotFound, "No availability")
		return
	}

	h.Session.Put(r.Context(), sessionDraftKey, db.Reservation{CheckInDate: start, CheckOutDate: end})
	writeJSON(w, http.StatusOK, entities.AvailableRoomsResponse{StartDate: sd, EndDate: ed, Rooms: rooms})
}

// ChooseRoom sets the room on the draft started by PostAvailability.
func (h *UserReservationHandler) ChooseRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Write(w, apperrors.ErrBadRequest("Invalid room id"))
		return
	}
	draft, ok := h.Session.Get(r.Context(), sessionDraftKey).(db.Reservation)
	if !ok {
		apperrors.Write(w, apperrors.ErrBadRequest("Can't get reservation from session"))
		return
	}
	room, err := h.Service.GetRoom(r.Context(), roomID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	draft.RoomID = room.ID
	draft.Room = room
	h.Session.Put(r.Context(), sessionDraftKey, draft)
	http.Redirect(w, r, "/make-reservation", http.StatusSeeOther)
}

// BookRoom is the target of the "Book Now!" link of the availability dialog.
func (h *UserReservationHandler) BookRoom(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	roomID, err := strconv.Atoi(q.Get("id"))
	if err != nil {
		apperrors.Write(w, apperrors.ErrBadRequest("Invalid room id"))
		return
	}
	start, end, err := utils.ParseStay(q.Get("start"), q.Get("end"))
	if err != nil {
		apperrors.Write(w, apperrors.ErrBadRequest("Invalid dates"))
		return
	}
	room, err := h.Service.GetRoom(r.Context(), roomID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Session.Put(r.Context(), sessionDraftKey, db.Reservation{
		RoomID:       room.ID,
		Room:         room,
		CheckInDate:  start,
		CheckOutDate: end,
	})
	http.Redirect(w, r, "/make-reservation", http.StatusSeeOther)
}

func (h *UserReservationHandler) Reservation(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.Session.Get(r.Context(), sessionDraftKey).(db.Reservation)
	if !ok {
		apperrors.Write(w, apperrors.ErrBadRequest("Can't get reservation from session"))
		return
	}
	writeJSON(w, http.StatusOK, entities.ReservationDraft{
		RoomID:    draft.RoomID,
		RoomName:  draft.Room.RoomName,
		StartDate: utils.FormatDate(draft.CheckInDate),
		EndDate:   utils.FormatDate(draft.CheckOutDate),
	})
}

func (h *UserReservationHandler) PostReservation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		apperrors.Write(w, apperrors.ErrBadRequest("Invalid form"))
		return
	}
	draft, ok := h.Session.Get(r.Context(), sessionDraftKey).(db.Reservation)
	if !ok {
		apperrors.Write(w, apperrors.ErrBadRequest("Can't get reservation from session"))
		return
	}

	req := entities.ReservationRequest{
		FirstName: r.Form.Get("first_name"),
		LastName:  r.Form.Get("last_name"),
		Email:     r.Form.Get("email"),
		Phone:     r.Form.Get("phone"),
	}
	res, err := h.Service.CreateReservation(r.Context(), draft, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.Session.Remove(r.Context(), sessionDraftKey)
	h.Session.Put(r.Context(), sessionSummaryKey, res)
	writeJSON(w, http.StatusCreated, service.ToReservationResponse(res))
}

func (h *UserReservationHandler) ReservationSummary(w http.ResponseWriter, r *http.Request) {
	res, ok := h.Session.Pop(r.Context(), sessionSummaryKey).(db.Reservation)
	if !ok {
		apperrors.WriteJSON(w, http.StatusNotFound, "No reservation in session")
		return
	}
	writeJSON(w, http.StatusOK, service.ToReservationResponse(res))
}

// fail renders err and logs it when it is not a client error.
func (h *UserReservationHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logFailure(h.log, r, err)
	apperrors.Write(w, err)
}

func logFailure(log *zap.Logger, r *http.Request, err error) {
	if apperrors.StatusOf(err) >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err))
	}
}
