package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

const layout = `<!DOCTYPE html>
<html><body style="font-family:Georgia,serif;color:#2e2240;max-width:560px;margin:auto">
<h2 style="color:#6b3fa0">Mystic Mart</h2>
{{template "content" .}}
<p style="font-size:12px;color:#888">You are receiving this email because of activity on your Mystic Mart account.</p>
</body></html>`

var templates = map[string]string{
	"verify": `{{define "content"}}<p>Hello {{.Name}},</p>
<p>Please confirm your email address to finish setting up your account.</p>
<p><a href="{{.Link}}">Verify email</a></p>{{end}}`,

	"reset": `{{define "content"}}<p>Hello {{.Name}},</p>
<p>We received a request to reset your password. The link below expires in one hour.</p>
<p><a href="{{.Link}}">Choose a new password</a></p>
<p>If you did not ask for this you can ignore this email.</p>{{end}}`,

	"order": `{{define "content"}}<p>Thank you for your order #{{.Order.ID}}.</p>
<table cellpadding="4">{{range .Order.Items}}<tr><td>{{.Name}}</td><td>x{{.Quantity}}</td><td>{{.LineTotal.StringFixed 2}}</td></tr>{{end}}
<tr><td colspan="2"><strong>Total</strong></td><td><strong>{{.Order.Currency}} {{.Order.TotalAmount.StringFixed 2}}</strong></td></tr></table>
<p>Payment reference: {{.Order.PaymentID}}</p>
<p>We will email you again once your parcel is on its way.</p>{{end}}`,

	"status": `{{define "content"}}<p>Your order #{{.Order.ID}} is now <strong>{{.Order.Status}}</strong>.</p>
{{if .Order.CourierName}}<p>Courier: {{.Order.CourierName}}</p>{{end}}
{{if .Order.TrackingID}}<p>Tracking number: {{.Order.TrackingID}}</p>{{end}}
<p><a href="{{.Link}}">View your orders</a></p>{{end}}`,

	"booking": `{{define "content"}}<p>Hello {{.Booking.Contact.Name}},</p>
<p>Your {{.Booking.ServiceName}} session is booked.</p>
{{if .Booking.ScheduledAt}}<p>Preferred date: {{.Booking.ScheduledAt.Format "02 Jan 2006 15:04"}}</p>{{end}}
<p>Amount paid: INR {{.Booking.Amount.StringFixed 2}} (payment {{.Booking.PaymentID}})</p>
<p>We will reach out to confirm the exact time.</p>{{end}}`,

	"enrollment": `{{define "content"}}<p>Hello {{.Enrollment.Contact.Name}},</p>
<p>You are enrolled in <strong>{{.Enrollment.CourseTitle}}</strong>.</p>
<p>Amount paid: INR {{.Enrollment.Amount.StringFixed 2}} (payment {{.Enrollment.PaymentID}})</p>{{end}}`,
}

var compiled = func() map[string]*template.Template {
	out := make(map[string]*template.Template, len(templates))
	for name, body := range templates {
		t := template.Must(template.New("layout").Parse(layout))
		out[name] = template.Must(t.Parse(body))
	}
	return out
}()

func render(name string, data any) (string, error) {
	t, ok := compiled[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}

func compose(to, subject, name string, data any) (Message, error) {
	body, err := render(name, data)
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: subject, HTML: body}, nil
}

// VerifyEmail asks the user to confirm their address.
func VerifyEmail(user *model.User, link string) (Message, error) {
	return compose(user.Email, "Verify your email", "verify", map[string]any{"Name": user.Name, "Link": link})
}

// PasswordReset carries the reset link.
func PasswordReset(user *model.User, link string) (Message, error) {
	return compose(user.Email, "Reset your password", "reset", map[string]any{"Name": user.Name, "Link": link})
}

// OrderConfirmation summarises a paid order.
func OrderConfirmation(to string, order *model.Order) (Message, error) {
	return compose(to, fmt.Sprintf("Order #%d confirmed", order.ID), "order", map[string]any{"Order": order})
}

// OrderStatus announces a status change.
func OrderStatus(to string, order *model.Order, link string) (Message, error) {
	return compose(to, fmt.Sprintf("Order #%d is %s", order.ID, order.Status), "status", map[string]any{"Order": order, "Link": link})
}

// BookingConfirmation confirms a paid service session.
func BookingConfirmation(booking *model.ServiceBooking) (Message, error) {
	return compose(booking.Contact.Email, "Your session is booked", "booking", map[string]any{"Booking": booking})
}

// EnrollmentConfirmation confirms a course enrollment.
func EnrollmentConfirmation(enrollment *model.CourseEnrollment) (Message, error) {
	return compose(enrollment.Contact.Email, "Welcome to "+enrollment.CourseTitle, "enrollment", map[string]any{"Enrollment": enrollment})
}
