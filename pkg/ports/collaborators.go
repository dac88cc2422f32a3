package ports

import "context"

// Announcer receives human-readable messages for assistive surfaces
// (the live-region analog in a terminal or web host). Implementations
// must be safe for concurrent use.
type Announcer interface {
	Announce(ctx context.Context, message string) error
}

// FocusMover moves keyboard focus to a named field, typically the first
// invalid one after a failed validation pass.
type FocusMover interface {
	Focus(ctx context.Context, field string) error
}

// NopAnnouncer discards all announcements.
type NopAnnouncer struct{}

func (NopAnnouncer) Announce(context.Context, string) error { return nil }

// NopFocusMover ignores focus requests.
type NopFocusMover struct{}

func (NopFocusMover) Focus(context.Context, string) error { return nil }

// AnnouncerFunc adapts a function to the Announcer interface.
type AnnouncerFunc func(ctx context.Context, message string) error

func (f AnnouncerFunc) Announce(ctx context.Context, message string) error {
	return f(ctx, message)
}

// FocusMoverFunc adapts a function to the FocusMover interface.
type FocusMoverFunc func(ctx context.Context, field string) error

func (f FocusMoverFunc) Focus(ctx context.Context, field string) error {
	return f(ctx, field)
}
