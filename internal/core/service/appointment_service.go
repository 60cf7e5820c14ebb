package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pawmarket/petstore-api/internal/core/domain"
	"github.com/pawmarket/petstore-api/internal/core/ports"
)

// AppointmentService implements veterinary appointment booking and status
// management.
type AppointmentService struct {
	repo   ports.AppointmentRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAppointmentService(repo ports.AppointmentRepository, users ports.UserRepository, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, users: users, logger: logger}
}

// Book schedules an appointment for the calling client. The target must
// hold the veterinarian role and the date must lie in the future.
func (s *AppointmentService) Book(ctx context.Context, caller domain.CallerContext, in ports.BookAppointmentInput) (*domain.Appointment, error) {
	if caller.Role != domain.RoleClient {
		return nil, domain.ErrForbidden
	}
	if !in.ScheduledAt.After(time.Now().UTC()) {
		return nil, domain.ErrPastAppointment
	}

	vet, err := s.users.FindByID(ctx, in.VetID)
	if err != nil {
		return nil, err
	}
	if vet.Role != domain.RoleVeterinarian {
		return nil, domain.ErrNotAVeterinarian
	}

	appointment := &domain.Appointment{
		ID:          uuid.NewString(),
		ClientID:    caller.UserID,
		VetID:       in.VetID,
		PetID:       in.PetID,
		ScheduledAt: in.ScheduledAt.UTC(),
		Reason:      in.Reason,
		Status:      domain.AppointmentScheduled,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("appointment_id", appointment.ID).
		Str("client_id", caller.UserID).
		Str("vet_id", in.VetID).
		Msg("appointment booked")

	return appointment, nil
}

func (s *AppointmentService) Get(ctx context.Context, caller domain.CallerContext, id string) (*domain.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessAppointment(appointment, caller) {
		return nil, domain.ErrForbidden
	}
	return appointment, nil
}

// List returns the appointments visible to the caller.
func (s *AppointmentService) List(ctx context.Context, caller domain.CallerContext) ([]*domain.Appointment, error) {
	switch {
	case caller.IsStaff():
		return s.repo.List(ctx)
	case caller.Role == domain.RoleClient:
		return s.repo.ListByClient(ctx, caller.UserID)
	case caller.Role == domain.RoleVeterinarian:
		return s.repo.ListByVet(ctx, caller.UserID)
	}
	return nil, domain.ErrForbidden
}

// UpdateStatus moves the appointment to next. Completed and cancelled are
// terminal.
func (s *AppointmentService) UpdateStatus(ctx context.Context, caller domain.CallerContext, id string, next domain.AppointmentStatus) (*domain.Appointment, error) {
	if !next.Valid() || next == domain.AppointmentScheduled {
		return nil, domain.ErrInvalidTransition
	}

	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanUpdateAppointment(appointment, next, caller) {
		return nil, domain.ErrForbidden
	}
	if appointment.Status != domain.AppointmentScheduled {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	appointment.Status = next
	return appointment, nil
}

var _ ports.AppointmentService = (*AppointmentService)(nil)
