package services

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/token"

	"kzone-booking-backend/internal/config"
	"kzone-booking-backend/internal/models"
)

// Notifier sends best-effort booking confirmation pushes over APNs. Sends
// are never surfaced to the user: a failed push is logged and dropped.
type Notifier struct {
	client *apns2.Client
	topic  string
}

// NewNotifier creates a notifier. Without APNs credentials it runs in mock
// mode and only logs what it would have sent.
func NewNotifier(cfg config.APNSConfig) (*Notifier, error) {
	n := &Notifier{topic: cfg.Topic}

	if cfg.AuthKeyPath == "" || cfg.KeyID == "" || cfg.TeamID == "" {
		log.Info().Msg("APNs credentials not configured, notifier running in mock mode")
		return n, nil
	}

	authKey, err := token.AuthKeyFromFile(cfg.AuthKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read APNs auth key: %w", err)
	}

	authToken := &token.Token{
		AuthKey: authKey,
		KeyID:   cfg.KeyID,
		TeamID:  cfg.TeamID,
	}

	if cfg.Production {
		n.client = apns2.NewTokenClient(authToken).Production()
	} else {
		n.client = apns2.NewTokenClient(authToken).Development()
	}
	return n, nil
}

// BookingConfirmed pushes a confirmation for a new booking to the user's
// registered device, if any
func (n *Notifier) BookingConfirmed(profile *models.UserProfile, booking models.Booking) {
	if profile == nil || profile.PushToken == nil || *profile.PushToken == "" {
		return
	}

	payload := fmt.Sprintf(
		`{"aps":{"alert":"Your booking for %s is confirmed!","sound":"default"}}`,
		booking.ExperienceName,
	)
	notification := &apns2.Notification{
		DeviceToken: *profile.PushToken,
		Topic:       n.topic,
		Payload:     []byte(payload),
	}

	if n.client == nil {
		log.Info().
			Str("booking_id", booking.ID).
			Str("uid", profile.UID).
			Msg("Push notification skipped (mock mode)")
		return
	}

	res, err := n.client.Push(notification)
	if err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID).Msg("Failed to send booking push")
		return
	}
	if !res.Sent() {
		log.Warn().
			Str("booking_id", booking.ID).
			Str("reason", res.Reason).
			Msg("Booking push rejected")
		return
	}
	log.Info().
		Str("booking_id", booking.ID).
		Str("apns_id", res.ApnsID).
		Msg("Booking push sent")
}
