package middleware

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its request id, peer, latency and result code. Reads (Get*, List*)
// are logged at debug level.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			procedure := req.Spec().Procedure
			attrs := []any{
				"procedure", procedure,
				"request_id", GetRequestID(ctx),
				"peer", req.Peer().Addr,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			switch code := connect.CodeOf(err); {
			case err == nil:
				level := slog.LevelInfo
				if isRead(procedure) {
					level = slog.LevelDebug
				}
				slog.Log(ctx, level, "RPC ok", attrs...)
			case code == connect.CodeUnknown || code == connect.CodeInternal:
				slog.Error("RPC error", append(attrs, "code", code, "error", err)...)
			default:
				slog.Warn("RPC error", append(attrs, "code", code, "error", err)...)
			}
			return resp, err
		}
	}
}

func isRead(procedure string) bool {
	method := procedure[strings.LastIndex(procedure, "/")+1:]
	return strings.HasPrefix(method, "Get") || strings.HasPrefix(method, "List")
}
