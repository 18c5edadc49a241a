package notification

import (
	"context"
	"errors"
	"sync"

	"fintrack/models"

	"firebase.google.com/go/v4/messaging"
)

// FCMPusher delivers alerts through Firebase Cloud Messaging. The alert tag
// is mapped onto the platform collapse key so repeated alerts for the same
// entity replace each other on the device.
type FCMPusher struct {
	Client      *messaging.Client
	DeviceToken string

	mu         sync.Mutex
	permission models.Permission
}

func NewFCMPusher(client *messaging.Client, deviceToken string) *FCMPusher {
	return &FCMPusher{
		Client:      client,
		DeviceToken: deviceToken,
		permission:  models.PermissionDefault,
	}
}

func (p *FCMPusher) Supported() bool {
	return p.Client != nil
}

func (p *FCMPusher) Permission() models.Permission {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.permission
}

// RequestPermission resolves consent for push delivery. With FCM there is no
// interactive prompt: a registered device token is consent, its absence is a
// denial.
func (p *FCMPusher) RequestPermission(ctx context.Context) (models.Permission, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Client == nil || p.DeviceToken == "" {
		p.permission = models.PermissionDenied
	} else {
		p.permission = models.PermissionGranted
	}
	return p.permission, nil
}

func (p *FCMPusher) Push(ctx context.Context, title string, opts Options) error {
	if p.Client == nil {
		return errors.New("fcm client is not initialized")
	}
	if p.DeviceToken == "" {
		return errors.New("no device token registered for push delivery")
	}

	msg := &messaging.Message{
		Token: p.DeviceToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  opts.Body,
		},
		Data: opts.Data,
		Android: &messaging.AndroidConfig{
			CollapseKey: opts.Tag,
			Notification: &messaging.AndroidNotification{
				Tag:   opts.Tag,
				Icon:  opts.Icon,
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-collapse-id": opts.Tag,
				"apns-push-type":   "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if opts.RequireInteraction {
		msg.Android.Priority = "high"
		msg.APNS.Headers["apns-priority"] = "10"
	}
	if opts.Silent {
		msg.Android.Notification.Sound = ""
		msg.APNS.Payload.Aps.Sound = ""
	}

	_, err := p.Client.Send(ctx, msg)
	return err
}
