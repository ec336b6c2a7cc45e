package mq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"time"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/app"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
	"github.com/go-playground/validator/v10"
)

type Booker interface {
	CreateReservation(ctx context.Context, in app.CreateReservationInput) (domain.Reservation, error)
}

type Canceller interface {
	CancelReservation(ctx context.Context, reservationID, requesterID string) error
}

type ScheduleReader interface {
	GetRoomSchedule(ctx context.Context, roomID string) (app.RoomSchedule, error)
}

// Dispatcher decodes command envelopes and runs them against the services.
// It never returns an error: every failure becomes a Response with OK=false.
type Dispatcher struct {
	booking  Booker
	cancel   Canceller
	schedule ScheduleReader
	validate *validator.Validate
	logger   *log.Logger
}

func NewDispatcher(booking Booker, cancel Canceller, schedule ScheduleReader, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Dispatcher{
		booking:  booking,
		cancel:   cancel,
		schedule: schedule,
		validate: validator.New(),
		logger:   logger,
	}
}

func (d *Dispatcher) Handle(ctx context.Context, body []byte) Response {
	var env CommandEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		d.logger.Printf("invalid command envelope: %v", err)
		return errorResponse("invalid_command", "invalid command format: "+err.Error())
	}

	switch env.Type {
	case CommandCreateReservation:
		return d.createReservation(ctx, env.Payload)
	case CommandCancelReservation:
		return d.cancelReservation(ctx, env.Payload)
	case CommandListRoomSchedule:
		return d.listRoomSchedule(ctx, env.Payload)
	default:
		d.logger.Printf("unknown command type=%s", env.Type)
		return errorResponse("unknown_command", "unknown command type: "+string(env.Type))
	}
}

func (d *Dispatcher) createReservation(ctx context.Context, payload json.RawMessage) Response {
	var req CreateReservationPayload
	if resp, ok := d.decode(payload, &req); !ok {
		return resp
	}

	start, _ := time.Parse(time.RFC3339, req.StartTime)
	end, _ := time.Parse(time.RFC3339, req.EndTime)
	res, err := d.booking.CreateReservation(ctx, app.CreateReservationInput{
		RoomID:  req.RoomID,
		OwnerID: req.OwnerID,
		Start:   start,
		End:     end,
		Note:    req.Note,
	})
	if err != nil {
		return d.fail(err)
	}
	return okResponse("CreateReservationResponse", CreateReservationResponsePayload{Reservation: toReservation(res)})
}

func (d *Dispatcher) cancelReservation(ctx context.Context, payload json.RawMessage) Response {
	var req CancelReservationPayload
	if resp, ok := d.decode(payload, &req); !ok {
		return resp
	}
	if err := d.cancel.CancelReservation(ctx, req.ReservationID, req.RequesterID); err != nil {
		return d.fail(err)
	}
	return okResponse("CancelReservationResponse", CancelReservationResponsePayload{ReservationID: req.ReservationID})
}

func (d *Dispatcher) listRoomSchedule(ctx context.Context, payload json.RawMessage) Response {
	var req ListRoomSchedulePayload
	if resp, ok := d.decode(payload, &req); !ok {
		return resp
	}
	schedule, err := d.schedule.GetRoomSchedule(ctx, req.RoomID)
	if err != nil {
		return d.fail(err)
	}
	out := ListRoomScheduleResponsePayload{
		RoomID:       schedule.Room.ID,
		RoomName:     schedule.Room.Name,
		Reservations: make([]Reservation, 0, len(schedule.Reservations)),
	}
	for _, res := range schedule.Reservations {
		out.Reservations = append(out.Reservations, toReservation(res))
	}
	return okResponse("ListRoomScheduleResponse", out)
}

func (d *Dispatcher) decode(payload json.RawMessage, dst any) (Response, bool) {
	if err := json.Unmarshal(payload, dst); err != nil {
		return errorResponse("invalid_payload", "invalid payload: "+err.Error()), false
	}
	if err := d.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errorResponse("invalid_payload", verrs[0].Field()+" failed "+verrs[0].Tag()+" validation"), false
		}
		return errorResponse("invalid_payload", err.Error()), false
	}
	return Response{}, true
}

func toReservation(r domain.Reservation) Reservation {
	return Reservation{
		ID:        r.ID,
		RoomID:    r.RoomID,
		OwnerID:   r.OwnerID,
		StartTime: r.Start.Format(time.RFC3339),
		EndTime:   r.End.Format(time.RFC3339),
		Note:      r.Note,
	}
}

func okResponse(typ string, payload any) Response {
	body, err := json.Marshal(payload)
	if err != nil {
		return errorResponse("internal_error", "internal error")
	}
	return Response{OK: true, Type: typ, Payload: body}
}

func errorResponse(code, msg string) Response {
	return Response{OK: false, Error: msg, Code: code, Type: "Error"}
}

var errorCodes = []struct {
	err  error
	code string
}{
	{domain.ErrStartOutsideHours, "start_outside_operating_hours"},
	{domain.ErrEndOutsideHours, "end_outside_operating_hours"},
	{domain.ErrPastStartTime, "past_start_time"},
	{domain.ErrInvertedWindow, "invalid_time_range"},
	{domain.ErrNoteTooLong, "note_too_long"},
	{domain.ErrOwnerRequired, "owner_required"},
	{domain.ErrInvalidID, "invalid_id"},
	{domain.ErrRoomNotFound, "room_not_found"},
	{domain.ErrReservationNotFound, "reservation_not_found"},
	{domain.ErrForbidden, "forbidden"},
	{domain.ErrReservationStarted, "reservation_started"},
	{domain.ErrConflict, "room_unavailable"},
	{domain.ErrBusy, "busy"},
}

func (d *Dispatcher) fail(err error) Response {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return errorResponse(ec.code, err.Error())
		}
	}
	d.logger.Printf("command failed: %v", err)
	return errorResponse("internal_error", "internal error")
}
