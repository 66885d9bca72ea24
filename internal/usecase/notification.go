package usecase

import "github.com/google/uuid"

const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Notification is a transient toast shown to the user.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

var (
	SignedOutNotification = Notification{
		Title:       "Signed out",
		Description: "You have been successfully signed out",
		Variant:     VariantDefault,
	}
	SignOutFailedNotification = Notification{
		Title:       "Error",
		Description: "Failed to sign out",
		Variant:     VariantDestructive,
	}
)

// SessionObserver is told when a user's session ended so live dashboards
// can follow. Notifications are never pushed through it: the caller that
// asked for the sign-out is the only one shown a toast.
type SessionObserver interface {
	SignedOut(userID uuid.UUID)
}
