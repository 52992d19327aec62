package types

import "time"

// Toast represents a notification message
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// ToastLevel indicates the severity of a toast
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// DefaultToastTTL is how long a toast stays on screen.
const DefaultToastTTL = 5 * time.Second

// NewToast returns a toast expiring after the default TTL.
func NewToast(level ToastLevel, message string) Toast {
	return Toast{
		Level:   level,
		Message: message,
		Expires: time.Now().Add(DefaultToastTTL),
	}
}

// PruneToasts drops expired toasts, preserving order.
func PruneToasts(toasts []Toast, now time.Time) []Toast {
	kept := toasts[:0]
	for _, t := range toasts {
		if t.Expires.After(now) {
			kept = append(kept, t)
		}
	}
	return kept
}
