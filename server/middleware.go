package server

import (
	"context"
	"net/http"
	"time"

	"github.com/soundbound/soundbound-server/http/request"
	"github.com/soundbound/soundbound-server/log"
	"github.com/soundbound/soundbound-server/util"
	"go.uber.org/zap"
)

func middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := request.FindClientIP(r)
		requestID := util.GenUUID()
		ctx := r.Context()
		ctx = context.WithValue(ctx, request.ClientIPContextKey, clientIP)
		ctx = context.WithValue(ctx, request.RequestIDContextKey, requestID)
		w.Header().Set("X-Request-Id", requestID)

		t1 := time.Now()
		defer func() {
			log.Debug("Incomming request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("proto", r.Proto),
				zap.String("client_ip", clientIP),
				zap.Duration("duration", time.Since(t1)))
		}()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
