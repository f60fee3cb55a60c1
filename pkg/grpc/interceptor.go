package grpc

import (
	"context"
	"fmt"
	"path"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"liyu1981.xyz/liftright-data-server/pkg/common"
)

const metadataRequestID = "x-request-id"

// CreateAccessLogInterceptor logs every unary call. Methods named in
// quietMethods are logged at debug level when they succeed.
func CreateAccessLogInterceptor(quietMethods []string) grpc.UnaryServerInterceptor {
	quiet := common.Reducer(quietMethods,
		func(m map[string]bool, name string) map[string]bool {
			m[name] = true
			return m
		},
		map[string]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		logger := common.GetLoggerWith(
			common.LoggerNameGrpcServer,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryAccessLog),
		)

		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get(metadataRequestID); len(ids) > 0 {
				fields = append(fields, zap.String("request_id", ids[0]))
			}
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		switch code {
		case codes.OK:
			if quiet[path.Base(info.FullMethod)] {
				logger.Debug("gRPC request", fields...)
			} else {
				logger.Info("gRPC request", fields...)
			}
		case codes.Internal, codes.Unavailable, codes.Unknown:
			logger.Error("gRPC request", fields...)
		default:
			logger.Warn("gRPC request", fields...)
		}

		return resp, err
	}
}

// CreateRecoveryInterceptor turns a panicking handler into codes.Internal.
func CreateRecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				common.GetLoggerWith(common.LoggerNameGrpcServer).Error("panic in gRPC handler",
					zap.String("method", info.FullMethod),
					zap.String("panic", fmt.Sprint(r)),
				)
				resp, err = nil, status.Errorf(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}
