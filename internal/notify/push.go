// README: FCM push to a driver's device when an order is assigned to them.
package notify

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"firebase.google.com/go/v4/messaging"

	"tvirti/internal/modules/driver"
	"tvirti/internal/modules/order"
)

// MessageSender is satisfied by *messaging.Client.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type PushNotifier struct {
	sender MessageSender
}

func NewPushNotifier(sender MessageSender) *PushNotifier {
	return &PushNotifier{sender: sender}
}

func (p *PushNotifier) DriverAssigned(ctx context.Context, d *driver.Driver, o *order.Order) error {
	if d.DeviceToken == "" {
		return fmt.Errorf("driver %s has no device token", d.ID)
	}
	msg := &messaging.Message{
		Token: d.DeviceToken,
		Data:  assignmentData(o),
		Notification: &messaging.Notification{
			Title: "ახალი შეკვეთა / New order",
			Body:  fmt.Sprintf("%s · %s", o.Pickup.Address, o.Price()),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}

	messageID, err := p.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("sending FCM to driver %s: %w", d.ID, err)
	}
	log.Printf("[notify][fcm] order %s sent to driver %s, message_id=%s", o.ID, d.ID, messageID)
	return nil
}

func assignmentData(o *order.Order) map[string]string {
	data := map[string]string{
		"type":           "order_assigned",
		"order_id":       string(o.ID),
		"service":        string(o.Service),
		"pickup_address": o.Pickup.Address,
		"pickup_lat":     strconv.FormatFloat(o.Pickup.Point.Lat, 'f', 6, 64),
		"pickup_lng":     strconv.FormatFloat(o.Pickup.Point.Lng, 'f', 6, 64),
		"driver_price":   strconv.FormatInt(o.DriverPrice, 10),
		"customer_phone": o.Customer.Phone,
	}
	if o.Dropoff != nil {
		data["dropoff_address"] = o.Dropoff.Address
		data["dropoff_lat"] = strconv.FormatFloat(o.Dropoff.Point.Lat, 'f', 6, 64)
		data["dropoff_lng"] = strconv.FormatFloat(o.Dropoff.Point.Lng, 'f', 6, 64)
	}
	if o.ScheduledAt != nil {
		data["scheduled_at"] = o.ScheduledAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	return data
}
