package grpc

import (
	"context"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// loggingInterceptor logs every unary call and turns handler panics into
// codes.Internal.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			s.logger.Error(ctx, "panic in gRPC handler", "method", info.FullMethod, "panic", p, "stack", string(debug.Stack()))
			resp, err = nil, status.Error(codes.Internal, "internal error")
		}

		code := status.Code(err)
		args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start).String()}
		if code == codes.OK {
			s.logger.Debug(ctx, "gRPC call", args...)
		} else {
			s.logger.Warn(ctx, "gRPC call failed", args...)
		}
	}()

	return handler(ctx, req)
}
