package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/etwin/twinboard/internal/api"
	"github.com/etwin/twinboard/internal/chat"
	"github.com/etwin/twinboard/internal/dashboard"
	"github.com/etwin/twinboard/internal/database"
	"github.com/etwin/twinboard/internal/heatmap"
	"github.com/etwin/twinboard/internal/middleware"
	"github.com/etwin/twinboard/internal/models"
)

const maxBodyBytes = 1 << 20

var (
	ErrNoDashboard     = errors.New("no dashboard available yet")
	ErrSectionOffline  = errors.New("section offline")
	ErrUnknownSection  = errors.New("unknown section")
	ErrFeatureDisabled = errors.New("feature disabled")
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// SectionResponse wraps one dashboard section with its provenance.
type SectionResponse struct {
	Section  string        `json:"section"`
	Source   models.Source `json:"source"`
	PolledAt time.Time     `json:"polled_at"`
	Data     interface{}   `json:"data"`
}

type TrendResponse struct {
	TrendQuery
	Points []models.TimeSeriesData `json:"points"`
}

type HealthResponse struct {
	Status     string               `json:"status"`
	PolledAt   *time.Time           `json:"polled_at,omitempty"`
	Simulation models.ServiceStatus `json:"simulation"`
	Governance models.ServiceStatus `json:"governance"`
	History    string               `json:"history"`
}

type EmergencyResponse struct {
	Result    *models.EmergencyResult `json:"result"`
	Dashboard *models.Dashboard       `json:"dashboard"`
}

type SignalResponse struct {
	Acks      map[string]*models.UpdateAck `json:"acks"`
	Dashboard *models.Dashboard            `json:"dashboard"`
}

type chatRequest struct {
	Question string `json:"question"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps package errors onto HTTP status codes.
func statusFor(err error) int {
	var ve *ValidationError
	var se *api.StatusError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, chat.ErrEmptyQuestion),
		errors.Is(err, heatmap.ErrInvalidCellSize),
		errors.Is(err, heatmap.ErrInvalidZones),
		errors.Is(err, database.ErrInvalidWindow),
		errors.Is(err, database.ErrInvalidAggregation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnknownSection):
		return http.StatusNotFound
	case errors.As(err, &se) && se.Code == http.StatusUnprocessableEntity:
		return http.StatusBadRequest
	case errors.Is(err, api.ErrUpstreamRequest),
		errors.Is(err, api.ErrUpstreamStatus),
		errors.Is(err, api.ErrUpstreamDecode):
		return http.StatusBadGateway
	case errors.Is(err, ErrNoDashboard),
		errors.Is(err, ErrSectionOffline),
		errors.Is(err, ErrFeatureDisabled),
		errors.Is(err, dashboard.ErrSimulationUnavailable),
		errors.Is(err, dashboard.ErrGovernanceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.WithFields(logrus.Fields{
			"request_id": middleware.RequestIDFromContext(r.Context()),
			"path":       r.URL.Path,
		}).WithError(err).Error("Request failed")
	}
	writeJSON(w, code, errorResponse{
		Error:     err.Error(),
		RequestID: middleware.RequestIDFromContext(r.Context()),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return invalid("invalid request body: %v", err)
	}
	return nil
}

func (s *Server) latest() (*models.Dashboard, error) {
	d := s.dashboard.Latest()
	if d == nil {
		return nil, ErrNoDashboard
	}
	return d, nil
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.latest()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) getSection(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("section")
	d, err := s.latest()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, ok := d.Section(name)
	if !ok {
		s.writeError(w, r, fmt.Errorf("%w: %s", ErrUnknownSection, name))
		return
	}
	writeJSON(w, http.StatusOK, SectionResponse{
		Section:  name,
		Source:   d.Sources[name],
		PolledAt: d.PolledAt,
		Data:     data,
	})
}

func (s *Server) nodes() (*models.NodeList, error) {
	d, err := s.latest()
	if err != nil {
		return nil, err
	}
	if d.Nodes == nil {
		return nil, fmt.Errorf("%w: %s", ErrSectionOffline, models.SectionNodes)
	}
	return d.Nodes, nil
}

func (s *Server) getNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.nodes()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nodes)
}

func (s *Server) getHeatmap(w http.ResponseWriter, r *http.Request) {
	cell := s.config.HeatmapCellDeg
	if raw := r.URL.Query().Get("cell"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.writeError(w, r, invalid("invalid cell: %s", raw))
			return
		}
		cell = v
	}
	nodes, err := s.nodes()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	fc, err := heatmap.Overlay(nodes.Nodes, cell)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := fc.MarshalJSON()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(body)
}

func (s *Server) getZones(w http.ResponseWriter, r *http.Request) {
	n := s.config.Zones
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, invalid("invalid n: %s", raw))
			return
		}
		n = v
	}
	nodes, err := s.nodes()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	zones, err := heatmap.Zones(nodes.Nodes, n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, zones)
}

func (s *Server) getTrends(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		s.writeError(w, r, fmt.Errorf("%w: metric history", ErrFeatureDisabled))
		return
	}
	q, err := ParseTrendQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validator.Validate(q); err != nil {
		s.writeError(w, r, err)
		return
	}
	points, err := s.repo.Query(r.Context(), q.Metric, q.Start, q.End, q.Window, q.Aggregation)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("query failed: %w", err))
		return
	}
	if points == nil {
		points = []models.TimeSeriesData{}
	}
	writeJSON(w, http.StatusOK, TrendResponse{TrendQuery: q, Points: points})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "down", History: "disabled"}
	if s.repo != nil {
		resp.History = "ok"
		if err := s.repo.Ping(r.Context()); err != nil {
			resp.History = "error"
		}
	}

	code := http.StatusServiceUnavailable
	if d := s.dashboard.Latest(); d != nil {
		resp.PolledAt = &d.PolledAt
		resp.Simulation = d.Simulation
		resp.Governance = d.Governance
		switch {
		case d.Simulation.Online && d.Governance.Online:
			resp.Status = "ok"
			code = http.StatusOK
		case d.Online():
			resp.Status = "degraded"
			code = http.StatusOK
		}
	}
	writeJSON(w, code, resp)
}

func (s *Server) postSimulate(w http.ResponseWriter, r *http.Request) {
	req := models.PolicyRequest{Steps: s.config.ProjectionSteps}
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Steps < 1 || req.Steps > maxProjectionSteps {
		s.writeError(w, r, invalid("steps must be between 1 and %d", maxProjectionSteps))
		return
	}
	d, err := s.dashboard.Project(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) postEmergency(w http.ResponseWriter, r *http.Request) {
	res, d, err := s.dashboard.Emergency(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EmergencyResponse{Result: res, Dashboard: d})
}

func (s *Server) postSignal(w http.ResponseWriter, r *http.Request) {
	update := models.NewSignalUpdate(0, 0)
	if err := decodeBody(w, r, &update); err != nil {
		s.writeError(w, r, err)
		return
	}
	acks, d, err := s.dashboard.InjectSignal(r.Context(), update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SignalResponse{Acks: acks, Dashboard: d})
}

func (s *Server) postRefresh(w http.ResponseWriter, r *http.Request) {
	d, _, err := s.dashboard.Refresh(r.Context(), true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) postChat(w http.ResponseWriter, r *http.Request) {
	if s.chat == nil {
		s.writeError(w, r, fmt.Errorf("%w: chat", ErrFeatureDisabled))
		return
	}
	var req chatRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	reply, err := s.chat.Ask(r.Context(), req.Question)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
