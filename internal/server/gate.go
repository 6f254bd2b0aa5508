package server

import (
	"errors"
	"net/http"
	"strings"

	"todomaster/internal/identity"
)

// Route classes for the access gate. Public routes are the marketing and
// auth pages an authenticated user should never land on again.
var publicRoutes = map[string]bool{
	"/":                     true,
	"/sign-in":              true,
	"/sign-up":              true,
	"/api/webhook/register": true,
}

func isAdminPath(path string) bool {
	return path == "/admin" || strings.HasPrefix(path, "/admin/")
}

func isProtectedPath(path string) bool {
	for _, prefix := range []string{"/dashboard", "/forum"} {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

// decision is the outcome of the access gate for one request: let it
// through, or send the caller somewhere else.
type decision struct {
	allow    bool
	redirect string
}

func landingPage(role identity.Role) string {
	if role.IsAdmin() {
		return "/admin/dashboard"
	}
	return "/dashboard"
}

// decide is the routing decision function. It inspects nothing but the auth
// state, the role claim and the path, and mutates nothing.
func decide(authenticated bool, role identity.Role, path string) decision {
	if !authenticated {
		if isProtectedPath(path) {
			return decision{redirect: "/sign-in"}
		}
		return decision{allow: true}
	}

	// Admins never see the non-admin experience, and vice versa.
	if !role.IsAdmin() && isAdminPath(path) {
		return decision{redirect: "/dashboard"}
	}
	if role.IsAdmin() && !isAdminPath(path) {
		return decision{redirect: "/admin/dashboard"}
	}

	// Authenticated users skip the public marketing and auth pages.
	if publicRoutes[path] {
		return decision{redirect: landingPage(role)}
	}

	return decision{allow: true}
}

// accessGate applies the routing decision to every page request. API routes
// carry their own JSON auth middleware and are exempt from redirects; the
// original gate would have bounced the admin UI's own API calls otherwise.
func (s *Server) accessGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if isAPIPath(path) {
			next.ServeHTTP(w, r)
			return
		}

		authenticated := false
		var role identity.Role
		if token := sessionToken(r); token != "" {
			sess, err := s.identity.VerifySession(r.Context(), token)
			switch {
			case err == nil:
				authenticated = true
				role = sess.Role
			case errors.Is(err, identity.ErrInvalidSession):
				// Expired or garbage token: treat the caller as signed out.
			default:
				s.log.Error().Err(err).Msg("resolving session for access gate")
				http.Redirect(w, r, "/error", http.StatusTemporaryRedirect)
				return
			}
		}

		d := decide(authenticated, role, path)
		if !d.allow {
			http.Redirect(w, r, d.redirect, http.StatusTemporaryRedirect)
			return
		}
		next.ServeHTTP(w, r)
	})
}
