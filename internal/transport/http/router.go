package http

import (
	"log"
	"net/http"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Services groups the application services exposed over HTTP.
type Services struct {
	Booking      ReservationCreator
	Cancellation ReservationCanceller
	Catalog      interface {
		RoomCatalog
		OwnerReservationLister
	}
	Admin AdminRoomService
}

type RouterConfig struct {
	CORSOrigins []string
	Hours       domain.OperatingHours
	Logger      *log.Logger
}

// NewRouter wires every route behind the shared middleware chain.
func NewRouter(svc Services, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(func(next http.Handler) http.Handler { return RequestLogger(next, cfg.Logger) })
	r.Use(middleware.Recoverer)
	r.Use(CORS(cfg.CORSOrigins))

	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(MethodNotAllowedHandler().ServeHTTP)

	r.Get("/health", HealthHandler)

	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", HandleListRooms(svc.Catalog))
		r.Get("/{roomID}", HandleGetRoom(svc.Catalog))
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Use(RequireUser)
		r.Get("/", HandleListMyReservations(svc.Catalog))
		r.Post("/", HandleCreateReservation(svc.Booking, cfg.Hours))
		r.Delete("/{reservationID}", HandleCancelReservation(svc.Cancellation))
	})

	r.Route("/admin/rooms", func(r chi.Router) {
		r.Get("/", HandleAdminListRooms(svc.Admin))
		r.Post("/", HandleAdminCreateRoom(svc.Admin))
	})

	return r
}
