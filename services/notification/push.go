package notification

import (
	"context"
	"errors"

	"fintrack/models"
)

// Pusher is the platform notification capability. It is injected so headless
// and test environments can report unsupported or substitute a fake.
type Pusher interface {
	Supported() bool
	Permission() models.Permission
	RequestPermission(ctx context.Context) (models.Permission, error)
	Push(ctx context.Context, title string, opts Options) error
}

// UnsupportedPusher is the capability used when no push backend is
// configured. Every delivery attempt fails; the dispatcher converts that to a
// logged no-op.
type UnsupportedPusher struct{}

func (UnsupportedPusher) Supported() bool { return false }

func (UnsupportedPusher) Permission() models.Permission { return models.PermissionDefault }

func (UnsupportedPusher) RequestPermission(ctx context.Context) (models.Permission, error) {
	return models.PermissionDefault, nil
}

func (UnsupportedPusher) Push(ctx context.Context, title string, opts Options) error {
	return errors.New("push notifications are not supported in this runtime")
}
