// Package route models the client navigation surface as two separate
// pieces: a two-state session machine (authenticated or not) and a pure
// path-to-screen mapping consulted with that state. Navigation policy and
// authentication policy never mix anywhere else.
package route

// Screen identifies one of the application's screens by its canonical path.
type Screen string

const (
	ScreenLogTrip  Screen = "/log"
	ScreenHistory  Screen = "/history"
	ScreenVehicles Screen = "/vehicles"
	ScreenReports  Screen = "/reports"
	ScreenInsights Screen = "/ai-insights"
	ScreenLogin    Screen = "/login"
)

// Resolution is the outcome of resolving a path: either a screen to mount
// or a redirect target, never both.
type Resolution struct {
	Screen     Screen `json:"screen,omitempty"`
	RedirectTo Screen `json:"redirect_to,omitempty"`
}

// DefaultScreen is the landing screen after a successful login.
func DefaultScreen() Screen {
	return ScreenLogTrip
}

// Resolve maps a requested path to a Resolution for the given session
// state. Unauthenticated sessions reach only the login screen; everything
// else redirects there. Authenticated sessions mount the requested screen,
// with the login path and any unrecognized path falling through to the
// trip-logging screen.
func Resolve(path string, authenticated bool) Resolution {
	if !authenticated {
		if path == string(ScreenLogin) {
			return Resolution{Screen: ScreenLogin}
		}
		return Resolution{RedirectTo: ScreenLogin}
	}

	switch Screen(path) {
	case ScreenLogTrip, ScreenHistory, ScreenVehicles, ScreenReports, ScreenInsights:
		return Resolution{Screen: Screen(path)}
	default:
		// Includes "/", "/login" and every unknown path.
		return Resolution{RedirectTo: DefaultScreen()}
	}
}
