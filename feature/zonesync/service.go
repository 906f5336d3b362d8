package zonesync

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/infoblox"
	"github.com/stefanriegel/infoblox-UDDI-zonesync/core/reconcile"
)

// ErrSyncInProgress is returned when a run is triggered while another is
// still executing. The platform does not deduplicate creates, so overlapping
// runs could double-create records.
var ErrSyncInProgress = errors.New("zonesync: a sync run is already in progress")

// Service runs reconciliations for one configured zone and view pair.
type Service struct {
	cfg    Config
	client infoblox.Client
	engine *reconcile.Engine
	logger *zap.Logger

	runMu sync.Mutex // single-flight guard around Sync

	lastMu sync.RWMutex
	last   *reconcile.Result
}

// NewService creates a sync service on top of the given API client.
func NewService(cfg Config, client infoblox.Client, logger *zap.Logger) *Service {
	bridge := &adapter{client: client}
	return &Service{
		cfg:    cfg,
		client: client,
		engine: reconcile.NewEngine(bridge, bridge, logger),
		logger: logger,
	}
}

// Sync executes one full bi-directional run. At most one run executes at a
// time; a second trigger fails fast with ErrSyncInProgress instead of racing
// on creates.
func (s *Service) Sync(ctx context.Context, opts reconcile.Options) (*reconcile.Result, error) {
	if !s.runMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.runMu.Unlock()

	s.logger.Info("starting zone synchronization",
		zap.String("zone", s.cfg.ZoneName),
		zap.String("view_source", s.cfg.ViewSource),
		zap.String("view_target", s.cfg.ViewTarget),
		zap.Bool("dry_run", opts.DryRun))

	result, err := s.engine.Reconcile(ctx, s.cfg.ZoneName, s.cfg.ViewSource, s.cfg.ViewTarget, opts)
	if err != nil {
		return nil, err
	}

	s.lastMu.Lock()
	s.last = result
	s.lastMu.Unlock()
	return result, nil
}

// LastResult returns the most recent completed run, or nil if none completed
// since the process started. Results are deliberately not persisted; the
// platform itself is the only durable state.
func (s *Service) LastResult() *reconcile.Result {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()
	return s.last
}

// ViewStatus is the preflight outcome for one view.
type ViewStatus struct {
	View    string `json:"view"`
	ViewID  string `json:"view_id,omitempty"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
}

// OK reports whether the view passed the preflight.
func (v ViewStatus) OK() bool { return v.Error == "" }

// Check verifies connectivity and permissions without writing anything: it
// resolves both view IDs and lists the zone's records in each view.
func (s *Service) Check(ctx context.Context) []ViewStatus {
	statuses := make([]ViewStatus, 0, 2)
	for _, view := range []string{s.cfg.ViewSource, s.cfg.ViewTarget} {
		status := ViewStatus{View: view}

		id, err := s.client.LookupViewID(ctx, view)
		if err != nil {
			status.Error = err.Error()
			statuses = append(statuses, status)
			continue
		}
		status.ViewID = id

		records, err := s.client.ListARecords(ctx, s.cfg.ZoneName, view)
		if err != nil {
			status.Error = err.Error()
			statuses = append(statuses, status)
			continue
		}
		status.Records = len(records)
		statuses = append(statuses, status)
	}
	return statuses
}
