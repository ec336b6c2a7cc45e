package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeUnauthorized         = "unauthorized"
	codeInvalidRequestBody   = "invalid_request_body"
	codeMissingRequiredField = "missing_required_field"
	codeInvalidField         = "invalid_field"
	codeInvalidID            = "invalid_id"
	codeInvalidTimeFormat    = "invalid_time_format"
	codeNoteTooLong          = "note_too_long"
	codePastStartTime        = "past_start_time"
	codeInvalidTimeRange     = "invalid_time_range"
	codeStartOutsideHours    = "start_outside_operating_hours"
	codeEndOutsideHours      = "end_outside_operating_hours"
	codeRoomUnavailable      = "room_unavailable"
	codeBusy                 = "busy"
	codeRoomNotFound         = "room_not_found"
	codeReservationNotFound  = "reservation_not_found"
	codeRoomNameRequired     = "room_name_required"
	codeInvalidCapacity      = "invalid_capacity"
	codeRoomAlreadyExists    = "room_already_exists"
	codeForbidden            = "forbidden"
	codeReservationStarted   = "reservation_started"
	codeInternalError        = "internal_error"
)

const retryAfterSeconds = 1

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeFieldError(w, status, code, "", msg)
}

func writeFieldError(w http.ResponseWriter, status int, code, field, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
		Field: field,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps service errors onto status codes. Unknown errors are
// reported as 500 without leaking their text.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrStartOutsideHours):
		writeFieldError(w, http.StatusBadRequest, codeStartOutsideHours, "start_time", err.Error())
	case errors.Is(err, domain.ErrEndOutsideHours):
		writeFieldError(w, http.StatusBadRequest, codeEndOutsideHours, "end_time", err.Error())
	case errors.Is(err, domain.ErrPastStartTime):
		writeFieldError(w, http.StatusBadRequest, codePastStartTime, "start_time", err.Error())
	case errors.Is(err, domain.ErrInvertedWindow):
		writeFieldError(w, http.StatusBadRequest, codeInvalidTimeRange, "end_time", err.Error())
	case errors.Is(err, domain.ErrNoteTooLong):
		writeFieldError(w, http.StatusBadRequest, codeNoteTooLong, "note", err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrRoomNameRequired):
		writeFieldError(w, http.StatusBadRequest, codeRoomNameRequired, "name", err.Error())
	case errors.Is(err, domain.ErrInvalidCapacity):
		writeFieldError(w, http.StatusBadRequest, codeInvalidCapacity, "capacity", err.Error())
	case errors.Is(err, domain.ErrOwnerRequired):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	case errors.Is(err, domain.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, codeRoomNotFound, err.Error())
	case errors.Is(err, domain.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, codeReservationNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeRoomUnavailable, err.Error())
	case errors.Is(err, domain.ErrReservationStarted):
		writeError(w, http.StatusConflict, codeReservationStarted, err.Error())
	case errors.Is(err, domain.ErrRoomAlreadyExists):
		writeError(w, http.StatusConflict, codeRoomAlreadyExists, err.Error())
	case errors.Is(err, domain.ErrBusy):
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
		writeError(w, http.StatusServiceUnavailable, codeBusy, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
