package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
	// CreateErr is returned by Create only, after Err.
	CreateErr error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	s.Next++
	stored := user
	s.Users[user.Email] = &stored
	s.ByID[user.ID] = &stored
	return &user, nil
}

// Put inserts user as is, overwriting any previous entry.
func (s *UserRepositoryStub) Put(user model.User) *model.User {
	stored := user
	s.Users[user.Email] = &stored
	s.ByID[user.ID] = &stored
	if user.ID >= s.Next {
		s.Next = user.ID + 1
	}
	return &stored
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, domainErrors.ErrUserNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, domainErrors.ErrUserNotFound
}

// List returns users ordered by id.
func (s *UserRepositoryStub) List(ctx context.Context, search string, page model.Page) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]model.User, 0, len(s.ByID))
	for _, u := range s.ByID {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UpdateRole changes a stored role.
func (s *UserRepositoryStub) UpdateRole(ctx context.Context, id int64, role model.Role) (*model.User, error) {
	user, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	cp := *user
	return &cp, nil
}

// UpdatePassword replaces a stored hash.
func (s *UserRepositoryStub) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	user, err := s.lookup(id)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	return nil
}

// MarkEmailVerified flags the user as verified.
func (s *UserRepositoryStub) MarkEmailVerified(ctx context.Context, id int64) error {
	user, err := s.lookup(id)
	if err != nil {
		return err
	}
	user.EmailVerified = true
	return nil
}

// Delete removes the user.
func (s *UserRepositoryStub) Delete(ctx context.Context, id int64) error {
	user, err := s.lookup(id)
	if err != nil {
		return err
	}
	delete(s.ByID, id)
	delete(s.Users, user.Email)
	return nil
}

func (s *UserRepositoryStub) lookup(id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrUserNotFound
	}
	return user, nil
}

// AdminRepositoryStub stores operators in-memory.
type AdminRepositoryStub struct {
	Admins  map[string]*model.Admin
	Touched []int64
	Next    int64
	Err     error
}

// NewAdminRepositoryStub constructs an empty admin store.
func NewAdminRepositoryStub() *AdminRepositoryStub {
	return &AdminRepositoryStub{Admins: make(map[string]*model.Admin), Next: 1}
}

// Create inserts unless the email is taken.
func (s *AdminRepositoryStub) Create(ctx context.Context, admin model.Admin) (*model.Admin, bool, error) {
	if s.Err != nil {
		return nil, false, s.Err
	}
	if existing, ok := s.Admins[admin.Email]; ok {
		cp := *existing
		return &cp, false, nil
	}
	admin.ID = s.Next
	s.Next++
	stored := admin
	s.Admins[admin.Email] = &stored
	return &admin, true, nil
}

// GetByEmail looks up by email.
func (s *AdminRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.Admins[email]; ok {
		cp := *admin
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID looks up by id.
func (s *AdminRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, admin := range s.Admins {
		if admin.ID == id {
			cp := *admin
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// TouchLogin records the call.
func (s *AdminRepositoryStub) TouchLogin(ctx context.Context, id int64) error {
	s.Touched = append(s.Touched, id)
	return nil
}

// SessionRepositoryStub stores sessions of either trust domain in-memory.
type SessionRepositoryStub struct {
	Sessions map[string]model.Session
	Err      error
}

// NewSessionRepositoryStub constructs an empty session store.
func NewSessionRepositoryStub() *SessionRepositoryStub {
	return &SessionRepositoryStub{Sessions: make(map[string]model.Session)}
}

// Create stores the session.
func (s *SessionRepositoryStub) Create(ctx context.Context, session model.Session) error {
	if s.Err != nil {
		return s.Err
	}
	s.Sessions[session.Token] = session
	return nil
}

// Get returns the session or not found.
func (s *SessionRepositoryStub) Get(ctx context.Context, token string) (*model.Session, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	session, ok := s.Sessions[token]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &session, nil
}

// Delete removes the session.
func (s *SessionRepositoryStub) Delete(ctx context.Context, token string) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Sessions[token]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Sessions, token)
	return nil
}

// DeleteBySubject removes every session of the subject.
func (s *SessionRepositoryStub) DeleteBySubject(ctx context.Context, subjectID int64) error {
	if s.Err != nil {
		return s.Err
	}
	for token, session := range s.Sessions {
		if session.SubjectID == subjectID {
			delete(s.Sessions, token)
		}
	}
	return nil
}

// RetryCall captures OutboxRepositoryStub.Retry arguments.
type RetryCall struct {
	ID    int64
	Cause string
	At    time.Time
}

// FailCall captures OutboxRepositoryStub.Fail arguments.
type FailCall struct {
	ID    int64
	Cause string
}

// OutboxRepositoryStub records outbox traffic. It is safe for concurrent use.
type OutboxRepositoryStub struct {
	ClaimFn    func(context.Context, int) ([]model.OutboxEvent, error)
	EnqueueErr error

	mu       sync.Mutex
	Enqueued []model.OutboxMessage
	Done     []int64
	Retried  []RetryCall
	Failed   []FailCall
}

// Enqueue records msg.
func (s *OutboxRepositoryStub) Enqueue(ctx context.Context, msg model.OutboxMessage) error {
	if s.EnqueueErr != nil {
		return s.EnqueueErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Enqueued = append(s.Enqueued, msg)
	return nil
}

// ClaimBatch delegates to ClaimFn or returns nothing.
func (s *OutboxRepositoryStub) ClaimBatch(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, limit)
	}
	return nil, nil
}

// MarkDone records id.
func (s *OutboxRepositoryStub) MarkDone(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Done = append(s.Done, id)
	return nil
}

// Retry records the reschedule.
func (s *OutboxRepositoryStub) Retry(ctx context.Context, id int64, cause string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Retried = append(s.Retried, RetryCall{ID: id, Cause: cause, At: at})
	return nil
}

// Fail records the terminal failure.
func (s *OutboxRepositoryStub) Fail(ctx context.Context, id int64, cause string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed = append(s.Failed, FailCall{ID: id, Cause: cause})
	return nil
}

// Snapshot returns copies of the recorded transitions.
func (s *OutboxRepositoryStub) Snapshot() (done []int64, retried []RetryCall, failed []FailCall) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Done...), append([]RetryCall(nil), s.Retried...), append([]FailCall(nil), s.Failed...)
}

// Kinds lists the kinds of enqueued messages in order.
func (s *OutboxRepositoryStub) Kinds() []model.EventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds := make([]model.EventKind, 0, len(s.Enqueued))
	for _, msg := range s.Enqueued {
		kinds = append(kinds, msg.Kind)
	}
	return kinds
}

// ProductRepositoryStub stores products in-memory.
type ProductRepositoryStub struct {
	Items     map[int64]*model.Product
	Next      int64
	Err       error
	ListCalls int
}

// NewProductRepositoryStub stores the given products keyed by id.
func NewProductRepositoryStub(products ...model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Items: make(map[int64]*model.Product), Next: 1}
	for _, p := range products {
		stored := p
		s.Items[p.ID] = &stored
		if p.ID >= s.Next {
			s.Next = p.ID + 1
		}
	}
	return s
}

// List returns all products ordered by id.
func (s *ProductRepositoryStub) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	s.ListCalls++
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Product, 0, len(s.Items))
	for _, p := range s.Items {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns a copy of the product.
func (s *ProductRepositoryStub) Get(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

// Create assigns an id and stores the product.
func (s *ProductRepositoryStub) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	product.ID = s.Next
	s.Next++
	stored := product
	s.Items[product.ID] = &stored
	return &product, nil
}

// Update replaces a stored product.
func (s *ProductRepositoryStub) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.Items[product.ID]; !ok {
		return nil, domainErrors.ErrProductNotFound
	}
	stored := product
	s.Items[product.ID] = &stored
	return &product, nil
}

// Delete removes a product.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[id]; !ok {
		return domainErrors.ErrProductNotFound
	}
	delete(s.Items, id)
	return nil
}

// ServiceRepositoryStub stores services in-memory.
type ServiceRepositoryStub struct {
	Items map[int64]*model.Service
	Next  int64
	Err   error
}

// NewServiceRepositoryStub stores the given services keyed by id.
func NewServiceRepositoryStub(services ...model.Service) *ServiceRepositoryStub {
	s := &ServiceRepositoryStub{Items: make(map[int64]*model.Service), Next: 100}
	for _, svc := range services {
		stored := svc
		s.Items[svc.ID] = &stored
	}
	return s
}

// List returns stored services, filtered by Active when asked.
func (s *ServiceRepositoryStub) List(ctx context.Context, activeOnly bool) ([]model.Service, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Service, 0, len(s.Items))
	for _, svc := range s.Items {
		if activeOnly && !svc.Active {
			continue
		}
		out = append(out, *svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns a copy of the service.
func (s *ServiceRepositoryStub) Get(ctx context.Context, id int64) (*model.Service, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	svc, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrServiceNotFound
	}
	cp := *svc
	return &cp, nil
}

// Create assigns an id and stores the service.
func (s *ServiceRepositoryStub) Create(ctx context.Context, service model.Service) (*model.Service, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	service.ID = s.Next
	s.Next++
	stored := service
	s.Items[service.ID] = &stored
	return &service, nil
}

// Update replaces a stored service.
func (s *ServiceRepositoryStub) Update(ctx context.Context, service model.Service) (*model.Service, error) {
	if _, ok := s.Items[service.ID]; !ok {
		return nil, domainErrors.ErrServiceNotFound
	}
	stored := service
	s.Items[service.ID] = &stored
	return &service, nil
}

// Delete removes a service.
func (s *ServiceRepositoryStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.Items[id]; !ok {
		return domainErrors.ErrServiceNotFound
	}
	delete(s.Items, id)
	return nil
}

// CourseRepositoryStub stores courses in-memory.
type CourseRepositoryStub struct {
	Items map[int64]*model.Course
	Next  int64
	Err   error
}

// NewCourseRepositoryStub stores the given courses keyed by id.
func NewCourseRepositoryStub(courses ...model.Course) *CourseRepositoryStub {
	s := &CourseRepositoryStub{Items: make(map[int64]*model.Course), Next: 100}
	for _, c := range courses {
		stored := c
		s.Items[c.ID] = &stored
	}
	return s
}

// List returns stored courses, filtered by Active when asked.
func (s *CourseRepositoryStub) List(ctx context.Context, activeOnly bool) ([]model.Course, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Course, 0, len(s.Items))
	for _, c := range s.Items {
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns a copy of the course.
func (s *CourseRepositoryStub) Get(ctx context.Context, id int64) (*model.Course, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

// Create assigns an id and stores the course.
func (s *CourseRepositoryStub) Create(ctx context.Context, course model.Course) (*model.Course, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	course.ID = s.Next
	s.Next++
	stored := course
	s.Items[course.ID] = &stored
	return &course, nil
}

// Update replaces a stored course.
func (s *CourseRepositoryStub) Update(ctx context.Context, course model.Course) (*model.Course, error) {
	if _, ok := s.Items[course.ID]; !ok {
		return nil, domainErrors.ErrCourseNotFound
	}
	stored := course
	s.Items[course.ID] = &stored
	return &course, nil
}

// Delete removes a course.
func (s *CourseRepositoryStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.Items[id]; !ok {
		return domainErrors.ErrCourseNotFound
	}
	delete(s.Items, id)
	return nil
}

// CartRepositoryStub stores cart lines in-memory. Stock is joined from Stock by product id.
type CartRepositoryStub struct {
	Items map[int64]*model.CartItem
	Stock map[int64]int
	Next  int64
	Err   error
}

// NewCartRepositoryStub constructs an empty cart store.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Items: make(map[int64]*model.CartItem), Stock: make(map[int64]int), Next: 1}
}

// ListByUser returns the user's lines ordered by id.
func (s *CartRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.CartItem
	for _, item := range s.Items {
		if item.UserID == userID {
			out = append(out, s.joined(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns one line.
func (s *CartRepositoryStub) Get(ctx context.Context, id int64) (*model.CartItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	item, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrCartItemNotFound
	}
	joined := s.joined(item)
	return &joined, nil
}

// FindByProduct returns the user's line for productID.
func (s *CartRepositoryStub) FindByProduct(ctx context.Context, userID, productID int64) (*model.CartItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, item := range s.Items {
		if item.UserID == userID && item.ProductID == productID {
			joined := s.joined(item)
			return &joined, nil
		}
	}
	return nil, domainErrors.ErrCartItemNotFound
}

// Upsert sets the absolute quantity of the user's line.
func (s *CartRepositoryStub) Upsert(ctx context.Context, userID, productID int64, quantity int) (*model.CartItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, item := range s.Items {
		if item.UserID == userID && item.ProductID == productID {
			item.Quantity = quantity
			joined := s.joined(item)
			return &joined, nil
		}
	}
	item := &model.CartItem{ID: s.Next, UserID: userID, ProductID: productID, Quantity: quantity}
	s.Next++
	s.Items[item.ID] = item
	joined := s.joined(item)
	return &joined, nil
}

// UpdateQuantity sets a line's quantity.
func (s *CartRepositoryStub) UpdateQuantity(ctx context.Context, id int64, quantity int) (*model.CartItem, error) {
	item, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrCartItemNotFound
	}
	item.Quantity = quantity
	joined := s.joined(item)
	return &joined, nil
}

// Delete removes a line.
func (s *CartRepositoryStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.Items[id]; !ok {
		return domainErrors.ErrCartItemNotFound
	}
	delete(s.Items, id)
	return nil
}

// ClearByUser removes all lines of the user.
func (s *CartRepositoryStub) ClearByUser(ctx context.Context, userID int64) error {
	if s.Err != nil {
		return s.Err
	}
	for id, item := range s.Items {
		if item.UserID == userID {
			delete(s.Items, id)
		}
	}
	return nil
}

func (s *CartRepositoryStub) joined(item *model.CartItem) model.CartItem {
	out := *item
	out.Stock = s.Stock[item.ProductID]
	return out
}

// OrderRepositoryStub stores orders in-memory and records writes.
type OrderRepositoryStub struct {
	Orders         map[int64]*model.Order
	UpdateStatusFn func(context.Context, model.StatusChange) (*model.Order, error)
	AttachErr      error
	Err            error

	Filters     []model.OrderFilter
	Changes     []model.StatusChange
	Deleted     []int64
	Recorded    map[int64]string
	Attachments []ShipmentAttachment
}

// ShipmentAttachment captures AttachShipment arguments.
type ShipmentAttachment struct {
	OrderID  int64
	Shipment model.Shipment
	Entry    model.TrackingEntry
}

// NewOrderRepositoryStub stores the given orders keyed by id.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Recorded: make(map[int64]string)}
	for _, o := range orders {
		stored := o
		s.Orders[o.ID] = &stored
	}
	return s
}

// Get returns a copy of the order.
func (s *OrderRepositoryStub) Get(ctx context.Context, id int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

// GetByPaymentID finds an order by gateway payment id.
func (s *OrderRepositoryStub) GetByPaymentID(ctx context.Context, paymentID string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, o := range s.Orders {
		if o.PaymentID == paymentID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrOrderNotFound
}

// List records the filter and returns matching orders ordered by id.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	s.Filters = append(s.Filters, filter)
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Order
	for _, o := range s.Orders {
		if filter.UserID != 0 && o.UserID != filter.UserID {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete removes the order.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.Orders[id]; !ok {
		return domainErrors.ErrOrderNotFound
	}
	delete(s.Orders, id)
	s.Deleted = append(s.Deleted, id)
	return nil
}

// UpdateStatus records the change and applies it to the stored order.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, change model.StatusChange) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, change)
	}
	o, ok := s.Orders[change.OrderID]
	if !ok {
		return nil, domainErrors.ErrOrderNotFound
	}
	s.Changes = append(s.Changes, change)
	o.Status = change.Status
	if change.CourierName != nil {
		o.CourierName = *change.CourierName
	}
	if change.TrackingID != nil {
		o.TrackingID = *change.TrackingID
	}
	cp := *o
	return &cp, nil
}

// RecordShipment stores the provider shipment id.
func (s *OrderRepositoryStub) RecordShipment(ctx context.Context, orderID int64, shipmentID string) error {
	o, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrOrderNotFound
	}
	o.ShipmentID = shipmentID
	s.Recorded[orderID] = shipmentID
	return nil
}

// AttachShipment records the call and stores courier details.
func (s *OrderRepositoryStub) AttachShipment(ctx context.Context, orderID int64, shipment model.Shipment, entry model.TrackingEntry) error {
	if s.AttachErr != nil {
		return s.AttachErr
	}
	o, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrOrderNotFound
	}
	o.TrackingID = shipment.AWBCode
	o.CourierName = shipment.CourierName
	o.ShipmentID = shipment.ShipmentID
	s.Attachments = append(s.Attachments, ShipmentAttachment{OrderID: orderID, Shipment: shipment, Entry: entry})
	return nil
}

// TrackingRepositoryStub stores tracking rows in-memory.
type TrackingRepositoryStub struct {
	Entries map[int64]*model.TrackingEntry
	Next    int64
	Err     error
}

// NewTrackingRepositoryStub constructs an empty tracking store.
func NewTrackingRepositoryStub() *TrackingRepositoryStub {
	return &TrackingRepositoryStub{Entries: make(map[int64]*model.TrackingEntry), Next: 1}
}

// Get returns one entry.
func (s *TrackingRepositoryStub) Get(ctx context.Context, id int64) (*model.TrackingEntry, error) {
	e, ok := s.Entries[id]
	if !ok {
		return nil, domainErrors.ErrTrackingNotFound
	}
	cp := *e
	return &cp, nil
}

// List returns the order's entries, newest id first.
func (s *TrackingRepositoryStub) List(ctx context.Context, orderID int64) ([]model.TrackingEntry, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.TrackingEntry
	for _, e := range s.Entries {
		if e.OrderID == orderID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Append stores a new entry.
func (s *TrackingRepositoryStub) Append(ctx context.Context, entry model.TrackingEntry) (*model.TrackingEntry, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	entry.ID = s.Next
	s.Next++
	stored := entry
	s.Entries[entry.ID] = &stored
	return &entry, nil
}

// Update applies the set fields.
func (s *TrackingRepositoryStub) Update(ctx context.Context, id int64, update model.TrackingUpdate) (*model.TrackingEntry, error) {
	e, ok := s.Entries[id]
	if !ok {
		return nil, domainErrors.ErrTrackingNotFound
	}
	if update.Status != nil {
		e.Status = *update.Status
	}
	if update.Description != nil {
		e.Description = *update.Description
	}
	if update.Location != nil {
		e.Location = *update.Location
	}
	cp := *e
	return &cp, nil
}

// CheckoutRepositoryStub records checkout writes and reports them as newly created.
type CheckoutRepositoryStub struct {
	PlaceOrderFn       func(context.Context, model.Order, []model.EventKind) (*model.Order, bool, error)
	RecordBookingFn    func(context.Context, model.ServiceBooking, []model.EventKind) (*model.ServiceBooking, bool, error)
	RecordEnrollmentFn func(context.Context, model.CourseEnrollment, []model.EventKind) (*model.CourseEnrollment, bool, error)

	Orders      []model.Order
	Bookings    []model.ServiceBooking
	Enrollments []model.CourseEnrollment
	Events      [][]model.EventKind
}

// PlaceOrder records the order with id 1 unless overridden.
func (s *CheckoutRepositoryStub) PlaceOrder(ctx context.Context, order model.Order, events []model.EventKind) (*model.Order, bool, error) {
	s.Orders = append(s.Orders, order)
	s.Events = append(s.Events, events)
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, order, events)
	}
	order.ID = int64(len(s.Orders))
	order.Status = model.OrderStatusPaid
	return &order, true, nil
}

// RecordBooking records the booking unless overridden.
func (s *CheckoutRepositoryStub) RecordBooking(ctx context.Context, booking model.ServiceBooking, events []model.EventKind) (*model.ServiceBooking, bool, error) {
	s.Bookings = append(s.Bookings, booking)
	s.Events = append(s.Events, events)
	if s.RecordBookingFn != nil {
		return s.RecordBookingFn(ctx, booking, events)
	}
	booking.ID = int64(len(s.Bookings))
	booking.Status = model.BookingStatusPaid
	return &booking, true, nil
}

// RecordEnrollment records the enrollment unless overridden.
func (s *CheckoutRepositoryStub) RecordEnrollment(ctx context.Context, enrollment model.CourseEnrollment, events []model.EventKind) (*model.CourseEnrollment, bool, error) {
	s.Enrollments = append(s.Enrollments, enrollment)
	s.Events = append(s.Events, events)
	if s.RecordEnrollmentFn != nil {
		return s.RecordEnrollmentFn(ctx, enrollment, events)
	}
	enrollment.ID = int64(len(s.Enrollments))
	enrollment.Status = model.BookingStatusPaid
	return &enrollment, true, nil
}

// BookingRepositoryStub stores bookings in-memory.
type BookingRepositoryStub struct {
	Items   map[int64]*model.ServiceBooking
	Filters []model.BookingFilter
	Err     error
}

// NewBookingRepositoryStub stores the given bookings keyed by id.
func NewBookingRepositoryStub(bookings ...model.ServiceBooking) *BookingRepositoryStub {
	s := &BookingRepositoryStub{Items: make(map[int64]*model.ServiceBooking)}
	for _, b := range bookings {
		stored := b
		s.Items[b.ID] = &stored
	}
	return s
}

// Get returns a copy of the booking.
func (s *BookingRepositoryStub) Get(ctx context.Context, id int64) (*model.ServiceBooking, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	b, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

// GetByPaymentID finds a booking by gateway payment id.
func (s *BookingRepositoryStub) GetByPaymentID(ctx context.Context, paymentID string) (*model.ServiceBooking, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, b := range s.Items {
		if b.PaymentID == paymentID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrBookingNotFound
}

// List records the filter and returns bookings ordered by id.
func (s *BookingRepositoryStub) List(ctx context.Context, filter model.BookingFilter) ([]model.ServiceBooking, error) {
	s.Filters = append(s.Filters, filter)
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.ServiceBooking
	for _, b := range s.Items {
		if filter.UserID != nil && (b.UserID == nil || *b.UserID != *filter.UserID) {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Reschedule applies the change.
func (s *BookingRepositoryStub) Reschedule(ctx context.Context, id int64, change model.Reschedule) (*model.ServiceBooking, error) {
	b, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrBookingNotFound
	}
	if change.ScheduledAt != nil {
		b.ScheduledAt = change.ScheduledAt
	}
	if change.Notes != nil {
		b.Notes = *change.Notes
	}
	cp := *b
	return &cp, nil
}

// UpdateStatus sets the booking status.
func (s *BookingRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.ServiceBooking, error) {
	b, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrBookingNotFound
	}
	b.Status = status
	cp := *b
	return &cp, nil
}

// Delete removes the booking.
func (s *BookingRepositoryStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.Items[id]; !ok {
		return domainErrors.ErrBookingNotFound
	}
	delete(s.Items, id)
	return nil
}

// EnrollmentRepositoryStub stores enrollments in-memory.
type EnrollmentRepositoryStub struct {
	Items   map[int64]*model.CourseEnrollment
	Filters []model.BookingFilter
	Err     error
}

// NewEnrollmentRepositoryStub stores the given enrollments keyed by id.
func NewEnrollmentRepositoryStub(enrollments ...model.CourseEnrollment) *EnrollmentRepositoryStub {
	s := &EnrollmentRepositoryStub{Items: make(map[int64]*model.CourseEnrollment)}
	for _, e := range enrollments {
		stored := e
		s.Items[e.ID] = &stored
	}
	return s
}

// Get returns a copy of the enrollment.
func (s *EnrollmentRepositoryStub) Get(ctx context.Context, id int64) (*model.CourseEnrollment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	e, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrEnrollmentNotFound
	}
	cp := *e
	return &cp, nil
}

// GetByPaymentID finds an enrollment by gateway payment id.
func (s *EnrollmentRepositoryStub) GetByPaymentID(ctx context.Context, paymentID string) (*model.CourseEnrollment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, e := range s.Items {
		if e.PaymentID == paymentID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrEnrollmentNotFound
}

// List records the filter and returns enrollments ordered by id.
func (s *EnrollmentRepositoryStub) List(ctx context.Context, filter model.BookingFilter) ([]model.CourseEnrollment, error) {
	s.Filters = append(s.Filters, filter)
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.CourseEnrollment, 0, len(s.Items))
	for _, e := range s.Items {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateStatus sets the enrollment status.
func (s *EnrollmentRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.CourseEnrollment, error) {
	e, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrEnrollmentNotFound
	}
	e.Status = status
	cp := *e
	return &cp, nil
}

// MessageRepositoryStub stores contact messages in-memory.
type MessageRepositoryStub struct {
	Items map[int64]*model.ContactMessage
	Next  int64
	Err   error
}

// NewMessageRepositoryStub constructs an empty message store.
func NewMessageRepositoryStub() *MessageRepositoryStub {
	return &MessageRepositoryStub{Items: make(map[int64]*model.ContactMessage), Next: 1}
}

// Create stores the message.
func (s *MessageRepositoryStub) Create(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	msg.ID = s.Next
	s.Next++
	stored := msg
	s.Items[msg.ID] = &stored
	return &msg, nil
}

// List returns messages ordered by id.
func (s *MessageRepositoryStub) List(ctx context.Context, unreadOnly bool, page model.Page) ([]model.ContactMessage, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.ContactMessage
	for _, m := range s.Items {
		if unreadOnly && m.Read {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MarkRead sets the read flag.
func (s *MessageRepositoryStub) MarkRead(ctx context.Context, id int64, read bool) (*model.ContactMessage, error) {
	m, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrMessageNotFound
	}
	m.Read = read
	cp := *m
	return &cp, nil
}

// Delete removes the message.
func (s *MessageRepositoryStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.Items[id]; !ok {
		return domainErrors.ErrMessageNotFound
	}
	delete(s.Items, id)
	return nil
}

// StatsRepositoryStub returns fixed dashboard counters.
type StatsRepositoryStub struct {
	Stats *model.Stats
	Err   error
}

// Collect returns the configured stats.
func (s StatsRepositoryStub) Collect(ctx context.Context) (*model.Stats, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Stats == nil {
		return &model.Stats{OrdersByStatus: map[model.OrderStatus]int64{}}, nil
	}
	return s.Stats, nil
}

var (
	_ repository.UserRepository            = (*UserRepositoryStub)(nil)
	_ repository.AdminRepository           = (*AdminRepositoryStub)(nil)
	_ repository.CustomerSessionRepository = (*SessionRepositoryStub)(nil)
	_ repository.AdminSessionRepository    = (*SessionRepositoryStub)(nil)
	_ repository.OutboxRepository          = (*OutboxRepositoryStub)(nil)
	_ repository.ProductRepository         = (*ProductRepositoryStub)(nil)
	_ repository.ServiceRepository         = (*ServiceRepositoryStub)(nil)
	_ repository.CourseRepository          = (*CourseRepositoryStub)(nil)
	_ repository.CartRepository            = (*CartRepositoryStub)(nil)
	_ repository.OrderRepository           = (*OrderRepositoryStub)(nil)
	_ repository.TrackingRepository        = (*TrackingRepositoryStub)(nil)
	_ repository.CheckoutRepository        = (*CheckoutRepositoryStub)(nil)
	_ repository.BookingRepository         = (*BookingRepositoryStub)(nil)
	_ repository.EnrollmentRepository      = (*EnrollmentRepositoryStub)(nil)
	_ repository.MessageRepository         = (*MessageRepositoryStub)(nil)
	_ repository.StatsRepository           = StatsRepositoryStub{}
)
