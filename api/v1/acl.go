package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/soundbound/soundbound-server/api/auth"
	"github.com/soundbound/soundbound-server/http/request"
	"github.com/soundbound/soundbound-server/http/response"
	"github.com/soundbound/soundbound-server/log"
	"github.com/soundbound/soundbound-server/model"
	"github.com/soundbound/soundbound-server/store"
	"github.com/soundbound/soundbound-server/util"
)

type AuthInterceptor struct {
	store  *store.Store
	secret string
}

func NewAuthInterceptor(store *store.Store, secret string) *AuthInterceptor {
	return &AuthInterceptor{store: store, secret: secret}
}

func (m *AuthInterceptor) AuthenticationInterceptor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		routeName := currentRouteName(r)
		clientIP := request.FindClientIP(r)
		accessToken := getAccessToken(r)

		if isUnauthorizeAllowed(routeName) {
			// Anonymous access is fine here, but a valid token still
			// identifies the caller so owners see their private data.
			if accessToken != "" {
				if user, err := m.authenticate(accessToken); err == nil {
					r = r.WithContext(withPrincipal(r.Context(), user))
				}
			}
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.authenticate(accessToken)
		if err != nil {
			log.Debug("Failed to authenticate user",
				zap.String("client_ip", clientIP),
				zap.String("user_agent", r.UserAgent()),
				zap.Error(err),
			)
			response.Unauthorized(w, r)
			return
		}

		if !isRoleAllowed(routeName, user.Role) {
			log.Debug("Role not allowed for route",
				zap.String("client_ip", clientIP),
				zap.String("route", routeName),
				zap.String("role", user.Role.String()),
			)
			response.Forbidden(w, r)
			return
		}

		if err := m.store.SetLastLogin(user.ID); err != nil {
			log.Warn("Failed to record last login", zap.Error(err))
		}

		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), user)))
	})
}

func (m *AuthInterceptor) authenticate(accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, errors.New("no access token provided")
	}
	claims := &auth.ClaimsMessage{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Name {
			return nil, errors.New("unexpected signing method")
		}
		if kid, ok := t.Header["kid"].(string); !ok || kid != auth.KeyID {
			return nil, errors.New("unexpected key id")
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, errors.New("Invalid or expired access token")
	}

	userID, err := util.ConvertStringToInt32(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "malformed ID in the token")
	}
	user, err := m.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	if user == nil {
		return nil, errors.Errorf("user not found with ID: %d", userID)
	}
	return user, nil
}

func withPrincipal(ctx context.Context, user *model.User) context.Context {
	ctx = context.WithValue(ctx, request.UserIDContextKey, user.ID)
	ctx = context.WithValue(ctx, request.UserNameContextKey, user.Username)
	ctx = context.WithValue(ctx, request.UserRoleContextKey, user.Role)
	return ctx
}

func currentRouteName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		return route.GetName()
	}
	return ""
}

func getAccessToken(r *http.Request) string {
	// Check the HTTP Authorization header first
	authorizationHeaders := r.Header.Get("Authorization")
	// Check bearer token
	if authorizationHeaders != "" {
		splitToken := strings.Split(authorizationHeaders, "Bearer ")
		if len(splitToken) == 2 {
			return splitToken[1]
		}
	}

	// Check the cookie header
	var accessToken string
	for cookie := range r.Cookies() {
		if r.Cookies()[cookie].Name == auth.AccessTokenCookieName {
			accessToken = r.Cookies()[cookie].Value
		}
	}
	return accessToken
}
