package server

import (
	"context"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/etwin/twinboard/internal/dashboard"
	"github.com/etwin/twinboard/internal/models"
)

// Service names reported by the health server. The empty name is the overall status.
const (
	ServiceOverall    = ""
	ServiceSimulation = "simulation"
	ServiceGovernance = "governance"
)

type servingStatus = grpc_health_v1.HealthCheckResponse_ServingStatus

// HealthChecker implements the gRPC health checking protocol
type HealthChecker struct {
	grpc_health_v1.UnimplementedHealthServer
	mu       sync.RWMutex
	status   map[string]servingStatus
	watchers map[string]map[chan servingStatus]struct{}
	shutdown bool
}

var _ dashboard.Observer = (*HealthChecker)(nil)

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		status:   make(map[string]servingStatus),
		watchers: make(map[string]map[chan servingStatus]struct{}),
	}
}

func (h *HealthChecker) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if status, ok := h.status[req.Service]; ok {
		return &grpc_health_v1.HealthCheckResponse{
			Status: status,
		}, nil
	}
	return nil, status.Error(codes.NotFound, "unknown service")
}

// Watch sends the current status of the service, then every change until the
// client goes away. Unknown services report SERVICE_UNKNOWN rather than failing.
func (h *HealthChecker) Watch(req *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	updates := make(chan servingStatus, 1)

	h.mu.Lock()
	current, ok := h.status[req.Service]
	if !ok {
		current = grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN
	}
	updates <- current
	if h.watchers[req.Service] == nil {
		h.watchers[req.Service] = make(map[chan servingStatus]struct{})
	}
	h.watchers[req.Service][updates] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.watchers[req.Service], updates)
		h.mu.Unlock()
	}()

	var last servingStatus = -1
	for {
		select {
		case s := <-updates:
			if s == last {
				continue
			}
			last = s
			if err := stream.Send(&grpc_health_v1.HealthCheckResponse{Status: s}); err != nil {
				return status.Errorf(codes.Canceled, "stream send failed: %v", err)
			}
		case <-stream.Context().Done():
			return status.Error(codes.Canceled, "stream has ended")
		}
	}
}

// SetServingStatus sets the serving status of a service
func (h *HealthChecker) SetServingStatus(service string, s servingStatus) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.shutdown {
		return
	}
	h.setLocked(service, s)
}

func (h *HealthChecker) setLocked(service string, s servingStatus) {
	h.status[service] = s
	for ch := range h.watchers[service] {
		// keep only the newest status for slow watchers
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// Shutdown marks every service NOT_SERVING and ignores later updates.
func (h *HealthChecker) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shutdown = true
	for service := range h.status {
		h.setLocked(service, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	}
}

// Observe maps the upstream badges of a freshly merged dashboard onto serving statuses.
func (h *HealthChecker) Observe(ctx context.Context, d *models.Dashboard) error {
	h.SetServingStatus(ServiceSimulation, serving(d.Simulation.Online))
	h.SetServingStatus(ServiceGovernance, serving(d.Governance.Online))
	h.SetServingStatus(ServiceOverall, serving(d.Online()))
	return nil
}

func serving(online bool) servingStatus {
	if online {
		return grpc_health_v1.HealthCheckResponse_SERVING
	}
	return grpc_health_v1.HealthCheckResponse_NOT_SERVING
}
