package mq

import "encoding/json"

type CommandType string

const (
	CommandCreateReservation CommandType = "CreateReservation"
	CommandCancelReservation CommandType = "CancelReservation"
	CommandListRoomSchedule  CommandType = "ListRoomSchedule"
)

// CommandEnvelope is the body of every message on the booking queue.
type CommandEnvelope struct {
	Type    CommandType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type CreateReservationPayload struct {
	RoomID    string `json:"room_id" validate:"required"`
	OwnerID   string `json:"owner_id" validate:"required"`
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   string `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Note      string `json:"note" validate:"max=500"`
}

type CancelReservationPayload struct {
	ReservationID string `json:"reservation_id" validate:"required"`
	RequesterID   string `json:"requester_id" validate:"required"`
}

type ListRoomSchedulePayload struct {
	RoomID string `json:"room_id" validate:"required"`
}

type Reservation struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	OwnerID   string `json:"owner_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Note      string `json:"note,omitempty"`
}

type CreateReservationResponsePayload struct {
	Reservation Reservation `json:"reservation"`
}

type CancelReservationResponsePayload struct {
	ReservationID string `json:"reservation_id"`
}

type ListRoomScheduleResponsePayload struct {
	RoomID       string        `json:"room_id"`
	RoomName     string        `json:"room_name"`
	Reservations []Reservation `json:"reservations"`
}

// Response is published to the delivery's ReplyTo queue with the same
// CorrelationId.
type Response struct {
	OK      bool            `json:"ok"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
