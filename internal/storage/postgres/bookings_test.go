package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
)

func TestBookingRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &bookingRepository{storage: storage}

	userID := int64(1)
	mock.ExpectQuery("FROM service_bookings b JOIN services s").WithArgs(&userID, "", 20, 0).
		WillReturnRows(bookingRow(5, &userID, model.BookingStatusPaid))
	list, err := repo.List(context.Background(), model.BookingFilter{UserID: &userID, Page: model.NewPage(0, 0)})
	if err != nil || len(list) != 1 || list[0].ServiceName != "Tarot Reading" {
		t.Fatalf("unexpected list: %v err=%v", list, err)
	}

	mock.ExpectQuery("WHERE b.id=").WithArgs(int64(6)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.Get(context.Background(), 6); !errors.Is(err, domainErrors.ErrBookingNotFound) {
		t.Fatalf("expected booking not found, got %v", err)
	}

	when := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE service_bookings").WithArgs(int64(5), &when, (*string)(nil)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectQuery("WHERE b.id=").WithArgs(int64(5)).WillReturnRows(bookingRow(5, &userID, model.BookingStatusPaid))
	if _, err := repo.Reschedule(context.Background(), 5, model.Reschedule{ScheduledAt: &when}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE service_bookings SET status=").WithArgs(int64(5), model.BookingStatusCancelled).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if _, err := repo.UpdateStatus(context.Background(), 5, model.BookingStatusCancelled); !errors.Is(err, domainErrors.ErrBookingNotFound) {
		t.Fatalf("expected booking not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM service_bookings").WithArgs(int64(5)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectMet(t, mock)
}

func TestEnrollmentRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &enrollmentRepository{storage: storage}

	mock.ExpectQuery("FROM course_enrollments e JOIN courses c").WithArgs((*int64)(nil), "PAID", 20, 0).WillReturnError(errors.New("query"))
	if _, err := repo.List(context.Background(), model.BookingFilter{Status: model.BookingStatusPaid, Page: model.NewPage(0, 0)}); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("WHERE e.payment_id=").WithArgs("pay_c").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByPaymentID(context.Background(), "pay_c"); !errors.Is(err, domainErrors.ErrEnrollmentNotFound) {
		t.Fatalf("expected enrollment not found, got %v", err)
	}

	expectMet(t, mock)
}
