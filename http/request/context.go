package request

import (
	"net/http"

	"github.com/soundbound/soundbound-server/model"
)

type ContextKey int

const (
	ClientIPContextKey ContextKey = iota
	RequestIDContextKey
	UserIDContextKey
	UserNameContextKey
	UserRoleContextKey
)

func getContextStringValue(r *http.Request, key ContextKey) string {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(string); valid {
			return value
		}
	}
	return ""
}

// ClientIP returns the client IP address stored in the context.
func ClientIP(r *http.Request) string {
	return getContextStringValue(r, ClientIPContextKey)
}

// RequestID returns the id assigned to this request by the server
// middleware.
func RequestID(r *http.Request) string {
	return getContextStringValue(r, RequestIDContextKey)
}

// UserID returns the authenticated user id, or 0 when the request is
// anonymous.
func UserID(r *http.Request) int32 {
	if v := r.Context().Value(UserIDContextKey); v != nil {
		if value, valid := v.(int32); valid {
			return value
		}
	}
	return 0
}

// UserName returns the authenticated username.
func UserName(r *http.Request) string {
	return getContextStringValue(r, UserNameContextKey)
}

// UserRole returns the authenticated user's role, or the empty role for
// anonymous requests.
func UserRole(r *http.Request) model.Role {
	if v := r.Context().Value(UserRoleContextKey); v != nil {
		if value, valid := v.(model.Role); valid {
			return value
		}
	}
	return ""
}
