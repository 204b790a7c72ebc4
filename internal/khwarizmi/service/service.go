package service

import (
	"context"
	"math"
	"time"

	"github.com/msto63/khwarizmi/foundation/algebra"
	"github.com/msto63/khwarizmi/foundation/algebra/solver"
	mdwerror "github.com/msto63/khwarizmi/foundation/core/error"
	"github.com/msto63/khwarizmi/internal/khwarizmi/store"
	"github.com/msto63/khwarizmi/pkg/core/cache"
	"github.com/msto63/khwarizmi/pkg/core/config"
	"github.com/msto63/khwarizmi/pkg/core/health"
	"github.com/msto63/khwarizmi/pkg/core/logging"
	"github.com/msto63/khwarizmi/pkg/core/version"
)

// Request sources recorded in the history
const (
	SourceCLI       = "cli"
	SourceREPL      = "repl"
	SourceGRPC      = "grpc"
	SourceHTTP      = "http"
	SourceWebSocket = "websocket"
)

// SolveRequest represents a solve request
type SolveRequest struct {
	Input     string
	Source    string
	RequestID string

	// OnStep receives every step in order. Cached results replay their steps.
	OnStep func(StepView)
}

// StepView is a rendered solver step
type StepView struct {
	Index     int    `json:"index"`
	Operation string `json:"operation"`
	Equation  string `json:"equation"`
}

// SolveResponse represents a solve response
type SolveResponse struct {
	RequestID  string     `json:"request_id,omitempty"`
	Input      string     `json:"input"`
	Equation   string     `json:"equation"`
	Output     string     `json:"result"`
	Variable   string     `json:"variable,omitempty"`
	Value      *float64   `json:"value,omitempty"` // nil when unsolved or not finite
	Solved     bool       `json:"solved"`
	Steps      []StepView `json:"steps"`
	Cached     bool       `json:"cached"`
	DurationMs float64    `json:"duration_ms"`
}

// Config holds service configuration
type Config struct {
	Engine       algebra.Options
	CacheSize    int
	CacheTTL     time.Duration
	History      store.HistoryStore // nil disables history
	HistoryLimit int
	Logger       *logging.Logger
}

// DefaultConfig returns default service configuration
func DefaultConfig() Config {
	return Config{
		Engine:       algebra.DefaultOptions(),
		CacheSize:    1000,
		CacheTTL:     time.Hour,
		HistoryLimit: 20,
	}
}

// Service is the khwarizmi solve service
type Service struct {
	engine       *algebra.Engine
	cache        *cache.SolutionCache
	history      store.HistoryStore
	historyLimit int
	health       *health.Registry
	logger       *logging.Logger
}

// NewService creates a new solve service
func NewService(cfg Config) (*Service, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("khwarizmi")
	}

	options := cfg.Engine
	if options.Logger == nil {
		options.Logger = logger.Foundation()
	}

	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = 20
	}

	s := &Service{
		engine: algebra.NewEngine(options),
		cache: cache.NewSolutionCache(cache.Config{
			MaxItems: cfg.CacheSize,
			TTL:      cfg.CacheTTL,
		}),
		history:      cfg.History,
		historyLimit: limit,
		health:       health.NewRegistry("khwarizmi", version.ComponentVersion("engine")),
		logger:       logger,
	}

	s.health.Register(health.FuncCheck("engine", func(ctx context.Context) error {
		_, err := s.engine.Solve("x=1")
		return err
	}))
	if s.history != nil {
		s.health.Register(health.PingCheck("history", s.history))
	}

	return s, nil
}

// NewFromConfig builds the service from the application configuration,
// opening the SQLite history when enabled
func NewFromConfig(cfg *config.Config, logger *logging.Logger) (*Service, error) {
	svcCfg := DefaultConfig()
	svcCfg.Engine.StrictDivision = cfg.IsStrictDivision()
	svcCfg.Engine.SwapSides = cfg.Solver.SwapSides
	svcCfg.CacheSize = cfg.Solver.CacheSize
	svcCfg.CacheTTL = cfg.Solver.CacheTTL.Duration
	svcCfg.HistoryLimit = cfg.History.Limit
	svcCfg.Logger = logger

	if cfg.IsHistoryEnabled() {
		history, err := store.NewSQLiteHistoryStore(store.SQLiteConfig{Path: cfg.History.Path})
		if err != nil {
			return nil, mdwerror.Wrap(err, "failed to open history").
				WithCode(mdwerror.CodeServiceInitialization).
				WithOperation("service.NewFromConfig")
		}
		svcCfg.History = history

		if cfg.History.Retention.Duration > 0 {
			if removed, err := history.Prune(context.Background(), cfg.History.Retention.Duration); err != nil {
				if logger != nil {
					logger.Warn("History prune failed", "error", err)
				}
			} else if removed > 0 && logger != nil {
				logger.Info("Pruned history", "removed", removed)
			}
		}
	}

	return NewService(svcCfg)
}

// Solve solves an equation, serving repeated inputs from the cache and
// recording every attempt in the history
func (s *Service) Solve(ctx context.Context, req *SolveRequest) (*SolveResponse, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, mdwerror.Wrap(err, "solve cancelled").
			WithCode(mdwerror.CodeTimeout).
			WithOperation("service.Solve")
	}

	options := s.engine.Options()
	result, cached := s.cache.Get(req.Input, options)

	var err error
	if cached {
		if req.OnStep != nil {
			for _, step := range result.Steps {
				req.OnStep(viewStep(step))
			}
		}
	} else {
		var onStep func(solver.Step)
		if req.OnStep != nil {
			onStep = func(step solver.Step) { req.OnStep(viewStep(step)) }
		}
		result, err = s.engine.SolveWithSteps(req.Input, onStep)
		if err == nil {
			s.cache.Set(req.Input, options, result)
		}
	}

	duration := time.Since(start)
	s.record(ctx, req, result, cached, duration, err)

	if err != nil {
		s.logger.With("input", req.Input, "source", req.Source).LogError(err)
		return nil, err
	}

	s.logger.Debug("Solved",
		"input", req.Input,
		"result", result.Output,
		"steps", len(result.Steps),
		"cached", cached,
	)

	return newResponse(req, result, cached, duration), nil
}

// History returns the most recent history entries, newest first
func (s *Service) History(ctx context.Context, limit int) ([]*store.Entry, error) {
	if s.history == nil {
		return nil, mdwerror.New("history is disabled").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation("service.History")
	}
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.history.Query(ctx, store.Filter{Limit: limit})
}

// HistoryStats returns aggregate history statistics
func (s *Service) HistoryStats(ctx context.Context) (*store.Stats, error) {
	if s.history == nil {
		return nil, mdwerror.New("history is disabled").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation("service.HistoryStats")
	}
	return s.history.Stats(ctx)
}

// HistoryEnabled reports whether solves are recorded
func (s *Service) HistoryEnabled() bool {
	return s.history != nil
}

// CacheStats returns solution cache statistics
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// Options returns the engine options
func (s *Service) Options() algebra.Options {
	return s.engine.Options()
}

// Health runs the registered health checks
func (s *Service) Health(ctx context.Context) *health.Report {
	return s.health.Check(ctx)
}

// HealthRegistry returns the health check registry
func (s *Service) HealthRegistry() *health.Registry {
	return s.health
}

// Close releases the cache and the history store
func (s *Service) Close() error {
	s.cache.Close()
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}

func (s *Service) record(ctx context.Context, req *SolveRequest, result *algebra.Result, cached bool, duration time.Duration, solveErr error) {
	if s.history == nil {
		return
	}

	entry := &store.Entry{
		Input:      req.Input,
		Status:     store.StatusSolved,
		DurationMs: float64(duration.Microseconds()) / 1000,
		Cached:     cached,
		Source:     req.Source,
		RequestID:  req.RequestID,
	}
	if solveErr != nil {
		entry.Status = store.StatusFailed
		entry.ErrorCode = mdwerror.GetCode(solveErr).String()
	} else {
		entry.Output = result.Output
		entry.Steps = len(result.Steps)
	}

	// a failing history must not fail the solve
	if err := s.history.Record(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Warn("Failed to record history", "error", err)
	}
}

func newResponse(req *SolveRequest, result *algebra.Result, cached bool, duration time.Duration) *SolveResponse {
	resp := &SolveResponse{
		RequestID:  req.RequestID,
		Input:      req.Input,
		Equation:   result.Initial.String(),
		Output:     result.Output,
		Variable:   result.Variable,
		Solved:     result.Solved,
		Steps:      make([]StepView, len(result.Steps)),
		Cached:     cached,
		DurationMs: float64(duration.Microseconds()) / 1000,
	}
	for i, step := range result.Steps {
		resp.Steps[i] = viewStep(step)
	}
	if result.Solved && !math.IsInf(result.Value, 0) && !math.IsNaN(result.Value) {
		value := result.Value
		resp.Value = &value
	}
	return resp
}

func viewStep(step solver.Step) StepView {
	return StepView{
		Index:     step.Index,
		Operation: step.Operation(),
		Equation:  step.Equation().String(),
	}
}
