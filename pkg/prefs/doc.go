// Package prefs persists client-side user preferences as a YAML file.
//
// The notification store consults the sound preference to decide whether an
// audible cue plays when a real-time notification arrives. Missing files
// produce defaults (sound enabled); writes are atomic.
//
//	p, err := prefs.Open(filepath.Join(cfgDir, "prefs.yaml"))
//	if err != nil { ... }
//	if p.SoundEnabled() {
//	    player.Play()
//	}
package prefs
