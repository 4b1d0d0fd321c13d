package handlers

import (
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/server/http/dto"
)

func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          string(u.Role),
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

func toAdminResponse(a model.Admin) dto.AdminResponse {
	return dto.AdminResponse{ID: a.ID, Email: a.Email, Name: a.Name, LastLoginAt: a.LastLoginAt}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Price:       p.Price.InexactFloat64(),
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toServiceResponse(s model.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price.InexactFloat64(),
		DurationMinutes: s.DurationMinutes,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
	}
}

func toCourseResponse(c model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Instructor:  c.Instructor,
		Price:       c.Price.InexactFloat64(),
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}

func toCartItemResponse(i model.CartItem) dto.CartItemResponse {
	return dto.CartItemResponse{
		ID:          i.ID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Price:       i.Price.InexactFloat64(),
		Stock:       i.Stock,
		Quantity:    i.Quantity,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price.InexactFloat64(),
		})
	}
	return dto.OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		TotalAmount:     o.TotalAmount.InexactFloat64(),
		Currency:        o.Currency,
		Status:          string(o.Status),
		PaymentID:       o.PaymentID,
		ShippingAddress: o.ShippingAddress,
		TrackingID:      o.TrackingID,
		CourierName:     o.CourierName,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toTrackingResponse(e model.TrackingEntry) dto.TrackingResponse {
	return dto.TrackingResponse{
		ID:          e.ID,
		OrderID:     e.OrderID,
		Status:      e.Status,
		Description: e.Description,
		Location:    e.Location,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toBookingResponse(b model.ServiceBooking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		ServiceID:     b.ServiceID,
		ServiceName:   b.ServiceName,
		Name:          b.Contact.Name,
		Email:         b.Contact.Email,
		Phone:         b.Contact.Phone,
		PreferredDate: b.ScheduledAt,
		Notes:         b.Notes,
		Amount:        b.Amount.InexactFloat64(),
		PaymentID:     b.PaymentID,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	}
}

func toEnrollmentResponse(e model.CourseEnrollment) dto.EnrollmentResponse {
	return dto.EnrollmentResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		CourseID:    e.CourseID,
		CourseTitle: e.CourseTitle,
		Name:        e.Contact.Name,
		Email:       e.Contact.Email,
		Phone:       e.Contact.Phone,
		Amount:      e.Amount.InexactFloat64(),
		PaymentID:   e.PaymentID,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
	}
}

func toMessageResponse(m model.ContactMessage) dto.ContactMessageResponse {
	return dto.ContactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Subject:   m.Subject,
		Message:   m.Message,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

// mapSlice converts a listing, always yielding a non-nil slice so empty lists encode as [].
func mapSlice[S, D any](in []S, fn func(S) D) []D {
	out := make([]D, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
