package shiprocket

import (
	"strconv"
	"time"

	"github.com/polkiloo/mysticmart/internal/domain/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type orderItem struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
}

type createOrderRequest struct {
	OrderID             string      `json:"order_id"`
	OrderDate           string      `json:"order_date"`
	PickupLocation      string      `json:"pickup_location"`
	BillingCustomerName string      `json:"billing_customer_name"`
	BillingLastName     string      `json:"billing_last_name"`
	BillingAddress      string      `json:"billing_address"`
	BillingCity         string      `json:"billing_city"`
	BillingPincode      string      `json:"billing_pincode"`
	BillingState        string      `json:"billing_state"`
	BillingCountry      string      `json:"billing_country"`
	BillingEmail        string      `json:"billing_email"`
	BillingPhone        string      `json:"billing_phone"`
	ShippingIsBilling   bool        `json:"shipping_is_billing"`
	OrderItems          []orderItem `json:"order_items"`
	PaymentMethod       string      `json:"payment_method"`
	SubTotal            float64     `json:"sub_total"`
	Length              float64     `json:"length"`
	Breadth             float64     `json:"breadth"`
	Height              float64     `json:"height"`
	Weight              float64     `json:"weight"`
}

type createOrderResponse struct {
	OrderID    int64  `json:"order_id"`
	ShipmentID int64  `json:"shipment_id"`
	Status     string `json:"status"`
}

type assignAWBRequest struct {
	ShipmentID int64 `json:"shipment_id"`
}

type assignAWBResponse struct {
	AWBAssignStatus int `json:"awb_assign_status"`
	Response        struct {
		Data struct {
			AWBCode     string `json:"awb_code"`
			CourierName string `json:"courier_name"`
		} `json:"data"`
	} `json:"response"`
}

// Parcel defaults in cm and kg for a boxed deck or crystal.
const (
	parcelLength  = 20
	parcelBreadth = 15
	parcelHeight  = 5
	parcelWeight  = 0.5
)

func newCreateOrderRequest(order *model.Order, pickup string, now time.Time) createOrderRequest {
	addr := order.ShippingAddress
	country := addr.Country
	if country == "" {
		country = "India"
	}

	items := make([]orderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItem{
			Name:         item.Name,
			SKU:          "P" + strconv.FormatInt(item.ProductID, 10),
			Units:        item.Quantity,
			SellingPrice: item.Price.InexactFloat64(),
		})
	}

	return createOrderRequest{
		OrderID:             strconv.FormatInt(order.ID, 10),
		OrderDate:           now.Format("2006-01-02 15:04"),
		PickupLocation:      pickup,
		BillingCustomerName: addr.Name,
		BillingAddress:      addr.Address,
		BillingCity:         addr.City,
		BillingPincode:      addr.Pincode,
		BillingState:        addr.State,
		BillingCountry:      country,
		BillingEmail:        addr.Email,
		BillingPhone:        addr.Phone,
		ShippingIsBilling:   true,
		OrderItems:          items,
		PaymentMethod:       "Prepaid",
		SubTotal:            order.TotalAmount.InexactFloat64(),
		Length:              parcelLength,
		Breadth:             parcelBreadth,
		Height:              parcelHeight,
		Weight:              parcelWeight,
	}
}
