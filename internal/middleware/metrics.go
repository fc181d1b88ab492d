package middleware

import (
	"context"
	"net/http"
	"path"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/etwin/twinboard/internal/metrics"
)

func NewMetricsInterceptor(m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		// Record metrics
		duration := time.Since(start).Seconds()
		method := path.Base(info.FullMethod)

		m.Requests.WithLabelValues("grpc", method, status.Code(err).String()).Inc()
		m.Latency.WithLabelValues("grpc", method).Observe(duration)

		return resp, err
	}
}

// Metrics records requests under the route pattern rather than the raw path so
// path parameters don't explode label cardinality.
func Metrics(m *metrics.Metrics, route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := recorder(w)

			next.ServeHTTP(rec, r)

			m.Requests.WithLabelValues("http", route, strconv.Itoa(rec.code())).Inc()
			m.Latency.WithLabelValues("http", route).Observe(time.Since(start).Seconds())
		})
	}
}
