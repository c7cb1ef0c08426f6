// Package notify posts desktop notifications for hook events.
package notify

import "github.com/gen2brain/beeep"

// Send posts a desktop notification with the given title and message.
// Callers treat failures as cosmetic and ignore the error.
func Send(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Alert posts a desktop notification that also triggers the system
// alert sound, where the platform supports one.
func Alert(title, message string) error {
	return beeep.Alert(title, message, "")
}
