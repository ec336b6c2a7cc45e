package http

import (
	"context"
	"net/http"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/app"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
)

// AdminRoomService is the minimal interface needed for admin room endpoints.
type AdminRoomService interface {
	CreateRoom(ctx context.Context, in app.CreateRoomInput) (domain.Room, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
}

// HandleAdminListRooms returns an HTTP handler for GET /admin/rooms.
func HandleAdminListRooms(svc AdminRoomService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms, err := svc.ListRooms(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		resp := make([]roomResponse, 0, len(rooms))
		for _, room := range rooms {
			resp = append(resp, toRoomResponse(room))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleAdminCreateRoom returns an HTTP handler for POST /admin/rooms.
func HandleAdminCreateRoom(svc AdminRoomService) http.HandlerFunc {
	v := newRequestValidator()
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRoomRequest
		if !v.decodeAndValidate(w, r, &req) {
			return
		}

		room, err := svc.CreateRoom(r.Context(), app.CreateRoomInput{
			Name:        req.Name,
			Capacity:    req.Capacity,
			Description: req.Description,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRoomResponse(room))
	}
}

type createRoomRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Capacity    int    `json:"capacity" validate:"gt=0"`
	Description string `json:"description" validate:"max=1000"`
}
