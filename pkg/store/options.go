package store

import "log/slog"

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for internal diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPageLimit sets the page size used for history loads.
// Values below 1 are ignored. Defaults to 5, the dropdown page size.
func WithPageLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.pageLimit = limit
		}
	}
}

// WithNavigator sets the UI navigation collaborator used by HandleClick.
// Without one, clicks still mark notifications read but never navigate.
func WithNavigator(nav Navigator) Option {
	return func(s *Store) {
		s.nav = nav
	}
}

// WithPreferences sets the user-preference collaborator gating cosmetic
// behavior. Without one, the sound cue is always played.
func WithPreferences(prefs Preferences) Option {
	return func(s *Store) {
		s.prefs = prefs
	}
}

// WithSoundPlayer sets the audible-cue collaborator for incoming
// notifications. Without one, arrivals are silent.
func WithSoundPlayer(player SoundPlayer) Option {
	return func(s *Store) {
		s.sound = player
	}
}
