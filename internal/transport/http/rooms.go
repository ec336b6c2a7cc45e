package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/app"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
	"github.com/go-chi/chi/v5"
)

// RoomCatalog is the minimal interface needed for the public room endpoints.
type RoomCatalog interface {
	ListRooms(ctx context.Context) ([]domain.RoomSummary, error)
	GetRoomSchedule(ctx context.Context, roomID string) (app.RoomSchedule, error)
}

func HandleListRooms(svc RoomCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms, err := svc.ListRooms(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]roomSummaryResponse, 0, len(rooms))
		for _, room := range rooms {
			resp = append(resp, roomSummaryResponse{
				roomResponse:         toRoomResponse(room.Room),
				UpcomingReservations: room.UpcomingReservations,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func HandleGetRoom(svc RoomCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schedule, err := svc.GetRoomSchedule(r.Context(), chi.URLParam(r, "roomID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := roomDetailResponse{
			roomResponse: toRoomResponse(schedule.Room),
			Reservations: make([]reservationResponse, 0, len(schedule.Reservations)),
		}
		for _, res := range schedule.Reservations {
			resp.Reservations = append(resp.Reservations, toReservationResponse(res))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type roomResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type roomSummaryResponse struct {
	roomResponse
	UpcomingReservations int `json:"upcoming_reservations"`
}

type roomDetailResponse struct {
	roomResponse
	Reservations []reservationResponse `json:"reservations"`
}

func toRoomResponse(room domain.Room) roomResponse {
	return roomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Capacity:    room.Capacity,
		Description: room.Description,
		CreatedAt:   room.CreatedAt,
	}
}
