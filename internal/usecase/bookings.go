package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/domain/repository"
)

// BookingUseCase manages service bookings and course enrollments after checkout.
type BookingUseCase struct {
	bookings    repository.BookingRepository
	enrollments repository.EnrollmentRepository
}

// NewBookingUseCase constructs BookingUseCase.
func NewBookingUseCase(bookings repository.BookingRepository, enrollments repository.EnrollmentRepository) *BookingUseCase {
	return &BookingUseCase{bookings: bookings, enrollments: enrollments}
}

// MyBookings lists the caller's own bookings.
func (u *BookingUseCase) MyBookings(ctx context.Context, p model.Principal, page model.Page) ([]model.ServiceBooking, error) {
	if p == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	id := p.SubjectID()
	return u.bookings.List(ctx, model.BookingFilter{UserID: &id, Page: model.NewPage(page.Limit, page.Offset)})
}

// Reschedule changes the preferred date or notes of an open booking owned by p.
func (u *BookingUseCase) Reschedule(ctx context.Context, p model.Principal, id int64, change model.Reschedule) (*model.ServiceBooking, error) {
	if change.ScheduledAt == nil && change.Notes == nil {
		return nil, domainErrors.ErrMissingFields
	}
	booking, err := u.ownedBooking(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == model.BookingStatusCancelled || booking.Status == model.BookingStatusCompleted {
		return nil, domainErrors.ErrInvalidStatus
	}
	if change.Notes != nil {
		notes := strings.TrimSpace(*change.Notes)
		change.Notes = &notes
	}
	return u.bookings.Reschedule(ctx, id, change)
}

// Cancel marks a booking owned by p as cancelled.
func (u *BookingUseCase) Cancel(ctx context.Context, p model.Principal, id int64) (*model.ServiceBooking, error) {
	booking, err := u.ownedBooking(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == model.BookingStatusCompleted {
		return nil, domainErrors.ErrInvalidStatus
	}
	if booking.Status == model.BookingStatusCancelled {
		return booking, nil
	}
	return u.bookings.UpdateStatus(ctx, id, model.BookingStatusCancelled)
}

// Bookings lists all bookings for the back office.
func (u *BookingUseCase) Bookings(ctx context.Context, status string, page model.Page) ([]model.ServiceBooking, error) {
	filter, err := bookingFilter(status, page)
	if err != nil {
		return nil, err
	}
	return u.bookings.List(ctx, filter)
}

// SetBookingStatus moves a booking into any known status.
func (u *BookingUseCase) SetBookingStatus(ctx context.Context, id int64, status string) (*model.ServiceBooking, error) {
	st, err := parseBookingStatus(status)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	return u.bookings.UpdateStatus(ctx, id, st)
}

// DeleteBooking removes a booking.
func (u *BookingUseCase) DeleteBooking(ctx context.Context, id int64) error {
	if id <= 0 {
		return domainErrors.ErrInvalidID
	}
	return u.bookings.Delete(ctx, id)
}

// Enrollments lists all enrollments for the back office.
func (u *BookingUseCase) Enrollments(ctx context.Context, status string, page model.Page) ([]model.CourseEnrollment, error) {
	filter, err := bookingFilter(status, page)
	if err != nil {
		return nil, err
	}
	return u.enrollments.List(ctx, filter)
}

// SetEnrollmentStatus moves an enrollment into any known status.
func (u *BookingUseCase) SetEnrollmentStatus(ctx context.Context, id int64, status string) (*model.CourseEnrollment, error) {
	st, err := parseBookingStatus(status)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	return u.enrollments.UpdateStatus(ctx, id, st)
}

func (u *BookingUseCase) ownedBooking(ctx context.Context, p model.Principal, id int64) (*model.ServiceBooking, error) {
	if p == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	if id <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	booking, err := u.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// Guest bookings have no owner and can only be changed from the back office.
	if booking.UserID == nil {
		if !model.IsAdmin(p) {
			return nil, domainErrors.ErrForbidden
		}
		return booking, nil
	}
	if !model.CanAccess(p, *booking.UserID) {
		return nil, domainErrors.ErrForbidden
	}
	return booking, nil
}

func bookingFilter(status string, page model.Page) (model.BookingFilter, error) {
	filter := model.BookingFilter{Page: model.NewPage(page.Limit, page.Offset)}
	if strings.TrimSpace(status) != "" {
		st, ok := model.ParseBookingStatus(status)
		if !ok {
			return filter, domainErrors.ErrInvalidStatus
		}
		filter.Status = st
	}
	return filter, nil
}

func parseBookingStatus(raw string) (model.BookingStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return "", domainErrors.ErrMissingFields
	}
	st, ok := model.ParseBookingStatus(raw)
	if !ok {
		return "", domainErrors.ErrInvalidStatus
	}
	return st, nil
}
