// Package guard decides whether a console route may be shown to the current session.
package guard

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Access is the level a route requires.
type Access int

const (
	Public Access = iota
	// GuestOnly routes are for signed-out users, such as registration.
	GuestOnly
	Authenticated
	AdminOnly
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case GuestOnly:
		return "guest"
	case Authenticated:
		return "authenticated"
	case AdminOnly:
		return "admin"
	}
	return "unknown"
}

// Session is the part of the session store the guard reads.
type Session interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

// Decision is either render (empty Redirect) or a redirect target.
type Decision struct {
	Redirect string
}

func (d Decision) Render() bool {
	return d.Redirect == ""
}

func render() Decision {
	return Decision{}
}

func redirectTo(path string) Decision {
	return Decision{Redirect: path}
}

// Decide maps the session state and the route's access level to a decision.
// A nil session is treated as signed out.
func Decide(s Session, access Access) Decision {
	authenticated := s != nil && s.IsAuthenticated()

	switch access {
	case Public:
		return render()
	case GuestOnly:
		if authenticated {
			return redirectTo(DashboardPath)
		}
		return render()
	case Authenticated:
		if !authenticated {
			return redirectTo(LoginPath)
		}
		return render()
	case AdminOnly:
		if !authenticated {
			return redirectTo(LoginPath)
		}
		if !s.IsAdmin() {
			return redirectTo(DashboardPath)
		}
		return render()
	}

	// unknown access levels fail closed
	return redirectTo(LoginPath)
}

// Middleware evaluates Decide on every request before calling next.
func Middleware(s Session, access Access, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := Decide(s, access)
		if !d.Render() {
			log.WithContext(r.Context()).WithFields(log.Fields{
				"path":     r.URL.Path,
				"access":   access.String(),
				"redirect": d.Redirect,
			}).Debug("route guard redirect")
			http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
