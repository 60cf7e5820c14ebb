package ports

import (
	"context"
	"time"

	"github.com/pawmarket/petstore-api/internal/core/domain"
)

// BookAppointmentInput carries the data to book a vet appointment.
type BookAppointmentInput struct {
	VetID       string
	PetID       string
	ScheduledAt time.Time
	Reason      string
}

// AppointmentService defines veterinary appointment use cases.
type AppointmentService interface {
	// Book schedules an appointment for the calling client with a
	// veterinarian; the date must be in the future and the target user
	// must actually hold the veterinarian role.
	Book(ctx context.Context, caller domain.CallerContext, in BookAppointmentInput) (*domain.Appointment, error)
	Get(ctx context.Context, caller domain.CallerContext, id string) (*domain.Appointment, error)
	// List returns the appointments visible to the caller: own bookings
	// for a client, own schedule for a veterinarian, everything for staff.
	List(ctx context.Context, caller domain.CallerContext) ([]*domain.Appointment, error)
	// UpdateStatus moves the appointment to next, subject to the
	// appointment authorization rules.
	UpdateStatus(ctx context.Context, caller domain.CallerContext, id string, next domain.AppointmentStatus) (*domain.Appointment, error)
}
