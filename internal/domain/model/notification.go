package model

import "fmt"

// Notification is a push message handed to the notifications service.
type Notification struct {
	OrderID int64
	Title   string
	Body    string
}

// CancelledNotification is sent after a successful cancellation.
func CancelledNotification(orderID int64) Notification {
	return Notification{OrderID: orderID, Title: "Order cancelled", Body: fmt.Sprintf("Order #%d was cancelled", orderID)}
}

// PaidNotification is sent after a successful payment.
func PaidNotification(orderID int64) Notification {
	return Notification{OrderID: orderID, Title: "Payment received", Body: fmt.Sprintf("Order #%d is paid", orderID)}
}

// StatusNotification is sent after a partner status update.
func StatusNotification(orderID int64, status OrderStatus) Notification {
	return Notification{OrderID: orderID, Title: "Order update", Body: fmt.Sprintf("Order #%d is %s", orderID, status)}
}
