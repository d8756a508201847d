package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tourbook/database/repository"
	"tourbook/models"
	"tourbook/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Event names mirror the booking service events.
const (
	eventCreated       = "booking.created"
	eventStatusChanged = "booking.status_changed"
	eventRescheduled   = "booking.rescheduled"
	eventCancelled     = "booking.cancelled"
	eventDeleted       = "booking.deleted"

	roleProvider = "provider"
	roleClient   = "client"
)

func (s *DefaultNotificationService) NotifyBooking(ctx context.Context, event string, b models.Booking) error {
	title, body := s.providerMessage(event, b)
	if title == "" {
		utils.GetLogger().Debug("No push for event", zap.String("event", event))
		return nil
	}
	data := map[string]string{
		"type":      event,
		"bookingId": b.ID,
		"role":      roleProvider,
	}
	err := s.pushProvider(ctx, b.ProviderID, title, body, data)

	if event == eventStatusChanged || event == eventRescheduled {
		title, body := s.clientMessage(event, b)
		clientData := map[string]string{"type": event, "bookingId": b.ID, "role": roleClient}
		err = errors.Join(err, s.pushClient(ctx, b.ClientEmail, title, body, clientData))
	}
	return err
}

func (s *DefaultNotificationService) RemindBooking(ctx context.Context, b models.Booking) error {
	when := s.formatWhen(b)
	data := map[string]string{"type": "booking.reminder", "bookingId": b.ID}

	providerData := withRole(data, roleProvider)
	err := s.pushProvider(ctx, b.ProviderID, "Upcoming tour",
		fmt.Sprintf("%s (%d guests) on %s", b.ServiceName, b.PartySize, when), providerData)

	clientData := withRole(data, roleClient)
	err = errors.Join(err, s.pushClient(ctx, b.ClientEmail, "Your tour is coming up",
		fmt.Sprintf("%s on %s", b.ServiceName, when), clientData))
	return err
}

func (s *DefaultNotificationService) providerMessage(event string, b models.Booking) (string, string) {
	when := s.formatWhen(b)
	switch event {
	case eventCreated:
		return "New booking", fmt.Sprintf("%s booked %s for %s", b.ClientName, b.ServiceName, when)
	case eventRescheduled:
		return "Booking moved", fmt.Sprintf("%s's booking is now on %s", b.ClientName, when)
	case eventCancelled:
		return "Booking cancelled", fmt.Sprintf("%s cancelled %s on %s", b.ClientName, b.ServiceName, when)
	case eventStatusChanged:
		return "Booking updated", fmt.Sprintf("%s on %s is now %s", b.ServiceName, when, b.Status)
	case eventDeleted:
		return "Booking removed", fmt.Sprintf("%s's booking on %s was removed", b.ClientName, when)
	}
	return "", ""
}

func (s *DefaultNotificationService) clientMessage(event string, b models.Booking) (string, string) {
	when := s.formatWhen(b)
	if event == eventRescheduled {
		return "Your booking was moved", fmt.Sprintf("%s is now on %s", b.ServiceName, when)
	}
	return "Your booking was updated", fmt.Sprintf("%s on %s is %s", b.ServiceName, when, b.Status)
}

// formatWhen renders the booking start like "2 January, 3:04 PM".
func (s *DefaultNotificationService) formatWhen(b models.Booking) string {
	day, err := models.ParseDate(b.Date, s.Location)
	if err != nil {
		return strings.TrimSpace(b.Date + " " + b.StartTime)
	}
	minutes, err := models.ParseClock(b.StartTime)
	if err != nil {
		return day.Format("2 January")
	}
	return day.Add(time.Duration(minutes)*time.Minute).Format("2 January, 3:04 PM")
}

func (s *DefaultNotificationService) pushProvider(ctx context.Context, providerID, title, body string, data map[string]string) error {
	p, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("pushProvider: could not load provider %s: %w", providerID, err)
	}
	if !s.pushEnabled(ctx, providerID) {
		return nil
	}
	owner, err := s.Users.GetByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("pushProvider: could not load owner of %s: %w", providerID, err)
	}
	return s.send(ctx, owner.FCMToken, title, body, data)
}

func (s *DefaultNotificationService) pushClient(ctx context.Context, email, title, body string, data map[string]string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("pushClient: could not load user: %w", err)
	}
	return s.send(ctx, u.FCMToken, title, body, data)
}

// pushEnabled defaults to true when settings are missing or unreadable.
func (s *DefaultNotificationService) pushEnabled(ctx context.Context, providerID string) bool {
	if s.Settings == nil {
		return true
	}
	st, err := s.Settings.GetByProviderID(ctx, providerID)
	if err != nil {
		return true
	}
	return st.PushNotifications
}

func (s *DefaultNotificationService) send(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" {
		return nil
	}
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "bookings",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
	id, err := s.Sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send: failed to send FCM message: %w", err)
	}
	utils.GetLogger().Debug("Push sent", zap.String("messageId", id), zap.String("type", data["type"]))
	return nil
}

func withRole(data map[string]string, role string) map[string]string {
	out := make(map[string]string, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	out["role"] = role
	return out
}
