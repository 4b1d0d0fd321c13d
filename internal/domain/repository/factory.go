package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Admins() AdminRepository
	CustomerSessions() CustomerSessionRepository
	AdminSessions() AdminSessionRepository
	Products() ProductRepository
	Services() ServiceRepository
	Courses() CourseRepository
	Cart() CartRepository
	Orders() OrderRepository
	Tracking() TrackingRepository
	Checkout() CheckoutRepository
	Bookings() BookingRepository
	Enrollments() EnrollmentRepository
	Messages() MessageRepository
	Outbox() OutboxRepository
	Stats() StatsRepository
}
