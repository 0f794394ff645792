package campaign

import "errors"

var (
	// ErrDailyLimitReached is returned by SendOne when today's quota is used up.
	// No transport connection is attempted.
	ErrDailyLimitReached = errors.New("daily limit reached")

	// ErrOutsideWindow is returned by SendOne outside business hours or on a
	// closed day. Callers wait for Window.NextOpen and try again.
	ErrOutsideWindow = errors.New("outside sending window")

	// ErrNoOpenWindow is returned when the window has no open period ahead.
	ErrNoOpenWindow = errors.New("sending window never opens")

	// ErrAlreadySent is returned for a contact whose address is in the sent log.
	ErrAlreadySent = errors.New("already sent")
)
