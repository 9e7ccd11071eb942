package notification

import "context"

// NoopBridge is used when redis is disabled: nobody is ever present and
// notifications are dropped.
type NoopBridge struct{}

func (NoopBridge) Touch(context.Context, string, string) error { return nil }

func (NoopBridge) Clear(context.Context, string, string) error { return nil }

func (NoopBridge) IsPresent(context.Context, string, string) (bool, error) { return false, nil }

func (NoopBridge) NotifyNewMessage(context.Context, string, string, string, string) error {
	return nil
}

func (NoopBridge) NotifyRoomClosed(context.Context, string, string, string) error { return nil }
