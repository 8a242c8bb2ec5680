// Package server exposes the amortization engine over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/payoff/internal/amortization"
	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/pipeline"
	"github.com/theirongolddev/payoff/internal/store"
)

// maxBodyBytes bounds a simulate request body.
const maxBodyBytes = 1 << 20

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	EventsBuffer int
	Cache        store.ResultCache // optional
	Logger       *zap.Logger
}

// Snapshot is a compact view of one simulation for status/event payloads.
type Snapshot struct {
	At            time.Time            `json:"at"`
	Params        model.LoanParameters `json:"params"`
	MonthCount    int                  `json:"month_count"`
	Left          float64              `json:"left"`
	TotalPaid     float64              `json:"total_paid"`
	TotalInterest float64              `json:"total_interest"`
	PaidOff       bool                 `json:"paid_off"`
	Cached        bool                 `json:"cached"`
}

// Event is emitted for every simulation served.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	Requests        int64     `json:"requests"`
	CacheHits       int64     `json:"cache_hits"`
	CacheErrors     int64     `json:"cache_errors"`
	Errors          int64     `json:"errors"`
	LastError       string    `json:"last_error,omitempty"`
	Last            *Snapshot `json:"last,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
	LiveConnections int       `json:"live_connections"`
}

// SimulateResponse is the reply to a simulate request.
type SimulateResponse struct {
	History model.PaymentHistory `json:"history"`
	Summary []string             `json:"summary"`
	Cached  bool                 `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Service provides the HTTP API.
type Service struct {
	cfg Config
	log *zap.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	requests    int64
	cacheHits   int64
	cacheErrors int64
	errCount    int64
	lastError   string
	last        *Snapshot
	nextEventID int64
	events      []Event
	live        int

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new service with the provided config.
func New(cfg Config) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		cfg:       cfg,
		log:       logger,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	mux.HandleFunc("/v1/simulate", s.handleSimulate)
	mux.HandleFunc("/v1/live", s.handleLive)
	return mux
}

// Run serves HTTP until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("listening", zap.String("addr", s.cfg.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

// simulate runs one request through the pipeline and records it.
func (s *Service) simulate(ctx context.Context, req pipeline.Request) (SimulateResponse, error) {
	res, err := pipeline.Run(ctx, s.cfg.Cache, req)
	if err != nil {
		s.recordError(err)
		return SimulateResponse{}, err
	}

	if res.CacheErr != nil {
		s.log.Warn("cache unavailable, computed directly", zap.Error(res.CacheErr))
	}

	now := time.Now()
	snap := snapshotFromResult(res, now)

	s.mu.Lock()
	s.requests++
	if res.Cached {
		s.cacheHits++
	}
	if res.CacheErr != nil {
		s.cacheErrors++
	}
	s.last = &snap
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      "simulation",
		Timestamp: now,
		Snapshot:  snap,
	}
	s.mu.Unlock()

	s.publishEvent(ev)
	s.log.Debug("simulated",
		zap.Float64("principal", req.Params.Principal),
		zap.Int("term_months", req.Params.TermMonths),
		zap.Int("month_count", res.History.MonthCount),
		zap.Bool("cached", res.Cached),
	)

	return SimulateResponse{
		History: res.History,
		Summary: cli.Summary(req.Params, res.History),
		Cached:  res.Cached,
	}, nil
}

func (s *Service) recordError(err error) {
	s.mu.Lock()
	s.requests++
	s.errCount++
	s.lastError = err.Error()
	s.mu.Unlock()
	s.log.Info("rejected request", zap.Error(err))
}

func snapshotFromResult(res *pipeline.Result, at time.Time) Snapshot {
	h := res.History
	return Snapshot{
		At:            at,
		Params:        res.Request.Params,
		MonthCount:    h.MonthCount,
		Left:          h.Left,
		TotalPaid:     h.YouPaid(),
		TotalInterest: h.YouPaidInterest(),
		PaidOff:       h.PaidOff(),
		Cached:        res.Cached,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		Requests:        s.requests,
		CacheHits:       s.cacheHits,
		CacheErrors:     s.cacheErrors,
		Errors:          s.errCount,
		LastError:       s.lastError,
		Last:            s.last,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
		LiveConnections: s.live,
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req pipeline.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.recordError(fmt.Errorf("decoding request: %w", err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	resp, err := s.simulate(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, amortization.ErrInvalidParameters) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	if last := s.snapshotStatus().Last; last != nil {
		writeSSE(w, Event{Type: "snapshot", Timestamp: time.Now(), Snapshot: *last})
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
