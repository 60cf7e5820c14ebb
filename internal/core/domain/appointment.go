package domain

import "time"

// AppointmentStatus tracks the lifecycle of a veterinary appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is a known appointment status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment is a booking between a client and a veterinarian.
type Appointment struct {
	ID          string            `json:"id" bson:"_id"`
	ClientID    string            `json:"client_id" bson:"client_id"`
	VetID       string            `json:"vet_id" bson:"vet_id"`
	PetID       string            `json:"pet_id,omitempty" bson:"pet_id,omitempty"`
	ScheduledAt time.Time         `json:"scheduled_at" bson:"scheduled_at"`
	Reason      string            `json:"reason,omitempty" bson:"reason,omitempty"`
	Status      AppointmentStatus `json:"status" bson:"status"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
}
