package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/app"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
	"github.com/go-chi/chi/v5"
)

// ReservationCreator is the minimal interface needed to book a room.
type ReservationCreator interface {
	CreateReservation(ctx context.Context, in app.CreateReservationInput) (domain.Reservation, error)
}

// ReservationCanceller is the minimal interface needed to cancel a reservation.
type ReservationCanceller interface {
	CancelReservation(ctx context.Context, reservationID, requesterID string) error
}

// OwnerReservationLister lists the caller's reservations.
type OwnerReservationLister interface {
	ListMyReservations(ctx context.Context, ownerID string) ([]domain.Reservation, error)
}

// HandleCreateReservation returns an HTTP handler for POST /reservations. The
// caller identity must already be on the request context (RequireUser).
func HandleCreateReservation(svc ReservationCreator, hours domain.OperatingHours) http.HandlerFunc {
	v := newRequestValidator()
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReservationRequest
		if !v.decodeAndValidate(w, r, &req) {
			return
		}

		// Both values already passed the datetime check.
		start, _ := time.Parse(time.RFC3339, req.StartTime)
		end, _ := time.Parse(time.RFC3339, req.EndTime)

		res, err := svc.CreateReservation(r.Context(), app.CreateReservationInput{
			RoomID:  req.RoomID,
			OwnerID: userIDFromContext(r.Context()),
			Start:   start,
			End:     end,
			Note:    req.Note,
		})
		if err != nil {
			if errors.Is(err, domain.ErrOutsideOperatingHours) {
				writeHoursError(w, err, hours)
				return
			}
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toReservationResponse(res))
	}
}

// HandleCancelReservation returns an HTTP handler for DELETE /reservations/{reservationID}.
func HandleCancelReservation(svc ReservationCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reservationID := chi.URLParam(r, "reservationID")
		if err := svc.CancelReservation(r.Context(), reservationID, userIDFromContext(r.Context())); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleListMyReservations returns an HTTP handler for GET /reservations.
func HandleListMyReservations(svc OwnerReservationLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reservations, err := svc.ListMyReservations(r.Context(), userIDFromContext(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]reservationResponse, 0, len(reservations))
		for _, res := range reservations {
			resp = append(resp, toReservationResponse(res))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeHoursError(w http.ResponseWriter, err error, hours domain.OperatingHours) {
	code, field := codeStartOutsideHours, "start_time"
	if errors.Is(err, domain.ErrEndOutsideHours) {
		code, field = codeEndOutsideHours, "end_time"
	}
	opensAt, closesAt := hours.Bounds()
	writeFieldError(w, http.StatusBadRequest, code, field,
		fmt.Sprintf("reservations are only allowed between %s and %s", opensAt, closesAt))
}

type createReservationRequest struct {
	RoomID    string `json:"room_id" validate:"required,uuid"`
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   string `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Note      string `json:"note" validate:"max=500"`
}

type reservationResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	OwnerID   string    `json:"owner_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toReservationResponse(r domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:        r.ID,
		RoomID:    r.RoomID,
		OwnerID:   r.OwnerID,
		StartTime: r.Start,
		EndTime:   r.End,
		Note:      r.Note,
		CreatedAt: r.CreatedAt,
	}
}
