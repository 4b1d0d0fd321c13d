package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/mysticmart/internal/config"
	"github.com/polkiloo/mysticmart/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.AdminRepository { return s.Admins() },
		func(s *Storage) repository.CustomerSessionRepository { return s.CustomerSessions() },
		func(s *Storage) repository.AdminSessionRepository { return s.AdminSessions() },
		func(s *Storage) repository.ProductRepository { return s.Products() },
		func(s *Storage) repository.ServiceRepository { return s.Services() },
		func(s *Storage) repository.CourseRepository { return s.Courses() },
		func(s *Storage) repository.CartRepository { return s.Cart() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.TrackingRepository { return s.Tracking() },
		func(s *Storage) repository.CheckoutRepository { return s.Checkout() },
		func(s *Storage) repository.BookingRepository { return s.Bookings() },
		func(s *Storage) repository.EnrollmentRepository { return s.Enrollments() },
		func(s *Storage) repository.MessageRepository { return s.Messages() },
		func(s *Storage) repository.OutboxRepository { return s.Outbox() },
		func(s *Storage) repository.StatsRepository { return s.Stats() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
