package models

// Preferences are the local settings edited in /admin/settings.
type Preferences struct {
	EmailNotifications bool `json:"emailNotifications"`
	DarkMode           bool `json:"darkMode"`
}

// DefaultPreferences matches the initial state of the settings view.
func DefaultPreferences() Preferences {
	return Preferences{EmailNotifications: true}
}
