package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"smartbooking/internal/entities"
	apperrors "smartbooking/internal/errors"
)

type AdminHandler struct {
	Service AdminService
	log     *zap.Logger
}

func NewAdminHandler(svc AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{Service: svc, log: log}
}

func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	onlyNew := r.URL.Query().Get("new") == "true"
	list, err := h.Service.ListReservations(r.Context(), onlyNew)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.Service.GetReservation(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AdminHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req entities.UpdateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.Write(w, apperrors.ErrBadRequest("Invalid request"))
		return
	}
	if err := h.Service.UpdateReservation(r.Context(), id, req); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Reservation updated"})
}

func (h *AdminHandler) ProcessReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.ProcessReservation(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Reservation marked as processed"})
}

func (h *AdminHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteReservation(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Reservation deleted"})
}

func (h *AdminHandler) RoomRestrictions(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	list, err := h.Service.RoomRestrictions(r.Context(), roomID, q.Get("start"), q.Get("end"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) BlockRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req BlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.Write(w, apperrors.ErrBadRequest("Invalid request"))
		return
	}
	id, err := h.Service.BlockRoom(r.Context(), roomID, req.Date)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, BlockResponse{ID: id})
}

func (h *AdminHandler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteBlock(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Block removed"})
}

func (h *AdminHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logFailure(h.log, r, err)
	apperrors.Write(w, err)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Write(w, apperrors.ErrBadRequest("Invalid id"))
		return 0, false
	}
	return id, true
}
