package window

// displayAvailable reports whether a graphical session is reachable. X11 and
// Wayland platforms need DISPLAY or WAYLAND_DISPLAY; macOS and Windows always
// have a desktop when a user runs the command.
func displayAvailable(goos string, lookupEnv func(string) (string, bool)) bool {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		for _, key := range []string{"DISPLAY", "WAYLAND_DISPLAY"} {
			if v, ok := lookupEnv(key); ok && v != "" {
				return true
			}
		}
		return false
	default:
		return true
	}
}
