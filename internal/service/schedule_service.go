package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/udp-horarios/horarios-api/internal/dto"
	"github.com/udp-horarios/horarios-api/internal/models"
	"github.com/udp-horarios/horarios-api/internal/solver"
	"github.com/udp-horarios/horarios-api/pkg/config"
	appErrors "github.com/udp-horarios/horarios-api/pkg/errors"
)

type courseCatalog interface {
	CodesByIDs(ctx context.Context, ids []int) (map[int]string, error)
}

type solverClient interface {
	Solve(ctx context.Context, req dto.SolveRequest) (*dto.SolveResponse, error)
	Datafiles(ctx context.Context) (*dto.DatafilesResponse, error)
}

// ScheduleService orchestrates the generate flow: resolve the approved
// courses, compile the constraint request, consult the cache, call the
// solver and decode the result.
type ScheduleService struct {
	catalog   courseCatalog
	solver    solverClient
	compiler  *CompilerService
	decoder   *DecoderService
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       config.SolverConfig

	// One outstanding solve per email. A second generate while one is
	// pending is rejected; the in-flight request is never aborted.
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewScheduleService builds the service.
func NewScheduleService(catalog courseCatalog, solverCli solverClient, compiler *CompilerService, decoder *DecoderService, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg config.SolverConfig) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		catalog:   catalog,
		solver:    solverCli,
		compiler:  compiler,
		decoder:   decoder,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		inFlight:  make(map[string]struct{}),
	}
}

// Generate runs one full solve for the student.
func (s *ScheduleService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validateGenerate(req.Email, req.Preferences); err != nil {
		return nil, err
	}

	if !s.acquire(req.Email) {
		return nil, appErrors.ErrSolveInProgress
	}
	defer s.release(req.Email)

	solveReq, err := s.compile(ctx, req.Email, req.ApprovedCourseIDs, req.Preferences, req.Malla, req.Sheet)
	if err != nil {
		return nil, err
	}

	key := solveCacheKey(solveReq)
	var solveResp dto.SolveResponse
	cached := s.cache.Get(ctx, key, &solveResp)
	if !cached {
		resp, err := s.callSolver(ctx, solveReq)
		if err != nil {
			return nil, err
		}
		solveResp = *resp
		s.cache.Set(ctx, key, solveResp)
	}

	solutions := s.decoder.DecodeAll(solveResp.Soluciones)
	for _, timetable := range solutions {
		s.metrics.ObserveDecodedBlocks(len(timetable.Blocks))
	}

	return &dto.GenerateScheduleResponse{
		RequestID:        uuid.NewString(),
		DocumentosLeidos: solveResp.DocumentosLeidos,
		SolutionCount:    len(solutions),
		Solutions:        solutions,
		Cached:           cached,
	}, nil
}

// Compile previews the compiled solver request without contacting the
// solver.
func (s *ScheduleService) Compile(ctx context.Context, req dto.CompileScheduleRequest) (*dto.SolveRequest, error) {
	if err := s.validateGenerate(req.Email, req.Preferences); err != nil {
		return nil, err
	}
	solveReq, err := s.compile(ctx, req.Email, req.ApprovedCourseIDs, req.Preferences, req.Malla, req.Sheet)
	if err != nil {
		return nil, err
	}
	return &solveReq, nil
}

// Decode re-decodes raw solver solutions into grids, e.g. for a response the
// client kept around.
func (s *ScheduleService) Decode(req dto.DecodeScheduleRequest) []models.Timetable {
	return s.decoder.DecodeAll(req.Soluciones)
}

// Datafiles proxies the solver's curriculum workbook listing.
func (s *ScheduleService) Datafiles(ctx context.Context) (*dto.DatafilesResponse, error) {
	files, err := s.solver.Datafiles(ctx)
	if err != nil {
		return nil, s.mapSolverError(err)
	}
	return files, nil
}

func (s *ScheduleService) compile(ctx context.Context, email string, approvedIDs []int, prefs models.UserPreferences, malla, sheet string) (dto.SolveRequest, error) {
	codes, err := s.catalog.CodesByIDs(ctx, approvedIDs)
	if err != nil {
		return dto.SolveRequest{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve approved courses")
	}

	if malla == "" {
		malla = s.cfg.DefaultMalla
	}
	if sheet == "" {
		sheet = s.cfg.DefaultSheet
	}

	return s.compiler.Compile(email, approvedIDs, codes, prefs, malla, sheet), nil
}

func (s *ScheduleService) callSolver(ctx context.Context, req dto.SolveRequest) (*dto.SolveResponse, error) {
	start := time.Now()
	resp, err := s.solver.Solve(ctx, req)
	duration := time.Since(start)

	if err != nil {
		s.metrics.ObserveSolverCall("error", duration, 0)
		return nil, s.mapSolverError(err)
	}

	s.metrics.ObserveSolverCall("success", duration, len(resp.Soluciones))
	s.logger.Info("solver call complete",
		zap.Duration("duration", duration),
		zap.Int("soluciones", len(resp.Soluciones)),
		zap.Int("documentos_leidos", resp.DocumentosLeidos),
	)
	return resp, nil
}

// mapSolverError translates transport failures into API errors. Empty
// results never reach this path; they are valid responses.
func (s *ScheduleService) mapSolverError(err error) error {
	var solverErr *solver.Error
	if errors.As(err, &solverErr) {
		if solverErr.StatusCode > 0 {
			mapped := appErrors.Clone(appErrors.ErrSolverRejected, fmt.Sprintf("solver rejected the request with status %d", solverErr.StatusCode))
			mapped.Details = solverErr.Payload
			mapped.Err = solverErr
			return mapped
		}
		return appErrors.Wrap(solverErr, appErrors.ErrSolverDown.Code, appErrors.ErrSolverDown.Status, appErrors.ErrSolverDown.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "solver call failed")
}

func (s *ScheduleService) validateGenerate(email string, prefs models.UserPreferences) error {
	if err := s.validator.Var(email, "required,email"); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "a valid email is required")
	}
	if prefs.StudentRanking != nil && (*prefs.StudentRanking < 0 || *prefs.StudentRanking > 1) {
		return appErrors.Clone(appErrors.ErrValidation, "studentRanking must be between 0 and 1")
	}
	for _, flag := range prefs.Optimizations {
		if !flag.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown optimization flag %q", flag))
		}
	}
	return nil
}

func (s *ScheduleService) acquire(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[email]; busy {
		return false
	}
	s.inFlight[email] = struct{}{}
	return true
}

func (s *ScheduleService) release(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, email)
}

// solveCacheKey hashes the compiled request. Compilation is deterministic,
// so identical preferences always map to the same key.
func solveCacheKey(req dto.SolveRequest) string {
	payload, err := json.Marshal(req)
	if err != nil {
		return "solve:" + req.Email
	}
	sum := sha256.Sum256(payload)
	return "solve:" + hex.EncodeToString(sum[:])
}
