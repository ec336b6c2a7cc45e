package mq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/app"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/clock"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/storage/memory"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, domain.Room) {
	t.Helper()
	clk := clock.NewFixed(time.Date(2030, 1, 6, 12, 0, 0, 0, time.UTC))
	store := memory.New(time.Second)
	room, err := app.NewAdminService(store, clk).CreateRoom(context.Background(), app.CreateRoomInput{Name: "Aula", Capacity: 30})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	d := NewDispatcher(
		app.NewBookingService(store, clk, domain.NewTimeWindowPolicy(domain.DefaultOperatingHours, time.UTC)),
		app.NewCancellationService(store, clk, nil),
		app.NewCatalogService(store, clk),
		nil,
	)
	return d, room
}

func command(t *testing.T, typ CommandType, payload any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	body, err := json.Marshal(CommandEnvelope{Type: typ, Payload: raw})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return body
}

func TestDispatcher_CreateCancelAndSchedule(t *testing.T) {
	t.Parallel()

	d, room := newTestDispatcher(t)
	ctx := context.Background()

	create := CreateReservationPayload{RoomID: room.ID, OwnerID: "alice", StartTime: "2030-01-07T09:00:00Z", EndTime: "2030-01-07T10:00:00Z"}
	resp := d.Handle(ctx, command(t, CommandCreateReservation, create))
	if !resp.OK || resp.Type != "CreateReservationResponse" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	var created CreateReservationResponsePayload
	if err := json.Unmarshal(resp.Payload, &created); err != nil {
		t.Fatalf("decode payload: %v", err)
	}

	create.OwnerID = "bob"
	resp = d.Handle(ctx, command(t, CommandCreateReservation, create))
	if resp.OK || resp.Code != "room_unavailable" {
		t.Fatalf("expected room_unavailable, got %+v", resp)
	}

	resp = d.Handle(ctx, command(t, CommandListRoomSchedule, ListRoomSchedulePayload{RoomID: room.ID}))
	var schedule ListRoomScheduleResponsePayload
	if err := json.Unmarshal(resp.Payload, &schedule); err != nil {
		t.Fatalf("decode schedule: %v", err)
	}
	if len(schedule.Reservations) != 1 || schedule.Reservations[0].ID != created.Reservation.ID {
		t.Fatalf("unexpected schedule: %+v", schedule)
	}

	resp = d.Handle(ctx, command(t, CommandCancelReservation, CancelReservationPayload{ReservationID: created.Reservation.ID, RequesterID: "bob"}))
	if resp.OK || resp.Code != "forbidden" {
		t.Fatalf("expected forbidden, got %+v", resp)
	}
	resp = d.Handle(ctx, command(t, CommandCancelReservation, CancelReservationPayload{ReservationID: created.Reservation.ID, RequesterID: "alice"}))
	if !resp.OK {
		t.Fatalf("expected cancel to succeed, got %+v", resp)
	}
}

func TestDispatcher_Rejections(t *testing.T) {
	t.Parallel()

	d, room := newTestDispatcher(t)

	tests := []struct {
		name string
		body []byte
		code string
	}{
		{name: "malformed envelope", body: []byte(`{"type":`), code: "invalid_command"},
		{name: "unknown command", body: []byte(`{"type":"ConfirmReservation","payload":{}}`), code: "unknown_command"},
		{
			name: "missing owner",
			body: command(t, CommandCreateReservation, CreateReservationPayload{RoomID: room.ID, StartTime: "2030-01-07T09:00:00Z", EndTime: "2030-01-07T10:00:00Z"}),
			code: "invalid_payload",
		},
		{
			name: "bad time format",
			body: command(t, CommandCreateReservation, CreateReservationPayload{RoomID: room.ID, OwnerID: "a", StartTime: "9am", EndTime: "2030-01-07T10:00:00Z"}),
			code: "invalid_payload",
		},
		{
			name: "start outside hours",
			body: command(t, CommandCreateReservation, CreateReservationPayload{RoomID: room.ID, OwnerID: "a", StartTime: "2030-01-07T07:00:00Z", EndTime: "2030-01-07T09:00:00Z"}),
			code: "start_outside_operating_hours",
		},
		{
			name: "unknown room",
			body: command(t, CommandListRoomSchedule, ListRoomSchedulePayload{RoomID: "missing"}),
			code: "room_not_found",
		},
		{
			name: "unknown reservation",
			body: command(t, CommandCancelReservation, CancelReservationPayload{ReservationID: "missing", RequesterID: "a"}),
			code: "reservation_not_found",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp := d.Handle(context.Background(), tt.body)
			if resp.OK {
				t.Fatalf("expected failure, got %+v", resp)
			}
			if resp.Code != tt.code {
				t.Fatalf("expected code %s, got %s (%s)", tt.code, resp.Code, resp.Error)
			}
		})
	}
}

func TestDispatcher_CancelAfterStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2030, 1, 6, 12, 0, 0, 0, time.UTC)
	clk := clock.Func(func() time.Time { return now })
	store := memory.New(time.Second)
	room, err := app.NewAdminService(store, clk).CreateRoom(context.Background(), app.CreateRoomInput{Name: "Aula", Capacity: 30})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	d := NewDispatcher(
		app.NewBookingService(store, clk, domain.NewTimeWindowPolicy(domain.DefaultOperatingHours, time.UTC)),
		app.NewCancellationService(store, clk, nil),
		app.NewCatalogService(store, clk),
		nil,
	)
	ctx := context.Background()

	create := CreateReservationPayload{RoomID: room.ID, OwnerID: "alice", StartTime: "2030-01-07T09:00:00Z", EndTime: "2030-01-07T10:00:00Z"}
	resp := d.Handle(ctx, command(t, CommandCreateReservation, create))
	var created CreateReservationResponsePayload
	if err := json.Unmarshal(resp.Payload, &created); err != nil {
		t.Fatalf("decode payload: %v", err)
	}

	now = time.Date(2030, 1, 7, 9, 30, 0, 0, time.UTC)
	resp = d.Handle(ctx, command(t, CommandCancelReservation, CancelReservationPayload{ReservationID: created.Reservation.ID, RequesterID: "alice"}))
	if resp.OK || resp.Code != "reservation_started" {
		t.Fatalf("expected reservation_started, got %+v", resp)
	}
}
