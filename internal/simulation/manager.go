// Package simulation wraps pkg/simulation.Simulation with the lifecycle,
// config validation, and history persistence a long-running process needs
// around it, adapting the teacher's Manager (internal/simulation.Manager)
// from a rocket-flight driver to a generic articulated-body run driver.
package simulation

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/zerodha/logf"

	"github.com/bxrne/artidyn/internal/config"
	"github.com/bxrne/artidyn/internal/logger"
	"github.com/bxrne/artidyn/internal/storage"
	"github.com/bxrne/artidyn/pkg/dynerrors"
	"github.com/bxrne/artidyn/pkg/integrator"
	"github.com/bxrne/artidyn/pkg/model"
	"github.com/bxrne/artidyn/pkg/simulation"
)

// ManagerStatus represents the status of the simulation manager.
type ManagerStatus string

const (
	StatusIdle         ManagerStatus = "idle"
	StatusInitializing ManagerStatus = "initializing"
	StatusRunning       ManagerStatus = "running"
	StatusCompleted     ManagerStatus = "completed"
	StatusFailed        ManagerStatus = "failed"
	StatusClosed        ManagerStatus = "closed"
)

// Manager handles the overall simulation lifecycle: validating engine
// config, building a Simulation for a given Model, running it to
// completion, and persisting its history.
type Manager struct {
	cfg    *config.Config
	log    logf.Logger
	mu     sync.Mutex
	status ManagerStatus
	sim    *simulation.Simulation
	store  *storage.Storage
	model  *model.Model
	runID  string
}

// NewManager creates a new simulation manager bound to cfg.
func NewManager(cfg *config.Config, log logf.Logger) *Manager {
	return &Manager{cfg: cfg, log: log, status: StatusIdle}
}

// Initialize validates the engine configuration, builds a Simulation for m
// using the configured integrator, and opens history storage under
// recordDir sized to m's joint count.
func (mgr *Manager) Initialize(m *model.Model, recordDir string) error {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.status = StatusInitializing
	mgr.model = m
	mgr.runID = filepath.Base(recordDir)

	if err := mgr.validateEngineConfig(); err != nil {
		mgr.status = StatusFailed
		mgr.log.Error("engine config rejected", append(logger.RunFields(mgr.runID, m.N()), "error", err)...)
		return err
	}

	store, err := storage.NewStorage(recordDir, storage.HistoryHeaders(m.N()))
	if err != nil {
		mgr.status = StatusFailed
		return fmt.Errorf("failed to open history storage: %w", err)
	}
	if err := store.Init(); err != nil {
		mgr.status = StatusFailed
		return fmt.Errorf("failed to initialize history storage: %w", err)
	}

	kind := integrator.RK4
	if mgr.cfg.Engine.Integrator == "euler" {
		kind = integrator.Euler
	}

	mgr.sim = simulation.New(m, kind)
	mgr.store = store
	mgr.status = StatusIdle
	mgr.log.Info("simulation initialized", logger.RunFields(mgr.runID, m.N())...)
	return nil
}

// validateEngineConfig checks the engine parameters from the manager's
// config that Initialize and Run depend on.
func (mgr *Manager) validateEngineConfig() error {
	step := mgr.cfg.Engine.Step
	maxTime := mgr.cfg.Engine.MaxTime
	if step <= 0 || step > maxTime {
		return fmt.Errorf("invalid engine.step: must be >0 and <= engine.max_time, got %f", step)
	}
	if maxTime <= 0 {
		return fmt.Errorf("invalid engine.max_time: must be >0, got %f", maxTime)
	}
	return nil
}

// Run advances the simulation to config.Engine.MaxTime and writes every
// recorded sample to history storage.
func (mgr *Manager) Run() error {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.status = StatusRunning

	nSteps := int(mgr.cfg.Engine.MaxTime/mgr.cfg.Engine.Step + 0.5)
	if nSteps < 1 {
		nSteps = 1
	}

	if err := mgr.sim.RunTo(mgr.cfg.Engine.MaxTime, nSteps); err != nil {
		mgr.status = StatusFailed
		mgr.logRunFailure(err)
		return err
	}

	for _, sample := range mgr.sim.History() {
		row := make([]string, 0, 1+2*len(sample.Q))
		row = append(row, fmt.Sprintf("%g", sample.T))
		for _, q := range sample.Q {
			row = append(row, fmt.Sprintf("%g", q))
		}
		for _, qd := range sample.Qdot {
			row = append(row, fmt.Sprintf("%g", qd))
		}
		if err := mgr.store.Write(row); err != nil {
			mgr.status = StatusFailed
			return fmt.Errorf("failed to write history row: %w", err)
		}
	}

	mgr.status = StatusCompleted
	mgr.log.Info("simulation completed successfully", logger.RunFields(mgr.runID, mgr.model.N())...)
	return nil
}

// logRunFailure logs a run failure with the run's identifying context, plus
// the offending joint's index and kind when err is a SingularJointError
// (§4.5, §7: the one failure mode the spec singles out as needing explicit,
// never-silent surfacing).
func (mgr *Manager) logRunFailure(err error) {
	fields := append(logger.RunFields(mgr.runID, mgr.model.N()), "error", err)

	var singular *dynerrors.SingularJointError
	if errors.As(err, &singular) {
		kind := mgr.model.Topology.Joints[singular.JointIndex].Kind.String()
		fields = append(fields, logger.JointFields(singular.JointIndex, kind, singular.Pass)...)
	}

	mgr.log.Error("simulation run failed", fields...)
}

// Simulation returns the underlying Simulation, or nil before Initialize.
func (mgr *Manager) Simulation() *simulation.Simulation { return mgr.sim }

// Close releases the manager's history storage.
func (mgr *Manager) Close() error {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	if mgr.status == StatusClosed {
		return nil
	}
	mgr.status = StatusClosed
	if mgr.store != nil {
		return mgr.store.Close()
	}
	return nil
}

// GetStatus returns the manager's current lifecycle status.
func (mgr *Manager) GetStatus() ManagerStatus {
	return mgr.status
}
