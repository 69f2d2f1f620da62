package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/zerodha/logf"

	"github.com/bxrne/artidyn/internal/config"
	"github.com/bxrne/artidyn/internal/modelio"
	"github.com/bxrne/artidyn/internal/report"
	simrunner "github.com/bxrne/artidyn/internal/simulation"
	"github.com/bxrne/artidyn/internal/storage"
	"github.com/bxrne/artidyn/pkg/model"
	"github.com/bxrne/artidyn/pkg/simulation"
)

// HandlerRecordManager is the subset of storage.RecordManager DataHandler depends on.
type HandlerRecordManager interface {
	CreateRecord(numJoints int) (*storage.Record, error)
	GetRecord(hash string) (*storage.Record, error)
	ListRecords() ([]*storage.Record, error)
	GetStorageDir() string
}

// runState tracks one in-flight or completed simulation run.
type runState struct {
	status      simrunner.ManagerStatus
	recordHash  string
	model       *model.Model
	err         error
	completedAt time.Time
}

// DataHandler serves the model submission, simulation run, and history
// retrieval endpoints, and the small dashboard at GET /.
type DataHandler struct {
	cfg     *config.Config
	log     *logf.Logger
	records HandlerRecordManager

	mu     sync.RWMutex
	models map[string]*model.Model
	runs   map[string]*runState
}

// NewDataHandler creates a DataHandler bound to cfg and records.
func NewDataHandler(cfg *config.Config, log *logf.Logger, records HandlerRecordManager) *DataHandler {
	return &DataHandler{
		cfg:     cfg,
		log:     log,
		records: records,
		models:  make(map[string]*model.Model),
		runs:    make(map[string]*runState),
	}
}

func (h *DataHandler) renderTempl(c *gin.Context, component templ.Component, statusCodes ...int) {
	statusCode := http.StatusOK
	if len(statusCodes) > 0 && statusCodes[0] >= 400 {
		statusCode = statusCodes[0]
	}
	c.Status(statusCode)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.log.Error("failed to render template", "error", err)
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to render template"})
		}
	}
}

// Index renders the dashboard: current app identity and a list of
// persisted simulation records.
func (h *DataHandler) Index(c *gin.Context) {
	records, err := h.records.ListRecords()
	if err != nil {
		h.log.Error("failed to list records", "error", err)
		records = nil
	}
	h.renderTempl(c, indexPage(h.cfg.App.Name, h.cfg.App.Version, records))
}

// PostModel accepts a YAML model description, parses it, and registers it
// under a fresh model ID for later simulation runs.
func (h *DataHandler) PostModel(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must contain a model description"})
		return
	}

	m, err := modelio.Parse(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := fmt.Sprintf("%x", sha256.Sum256(body))[:16]

	h.mu.Lock()
	h.models[id] = m
	h.mu.Unlock()

	h.log.Info("registered model", "model_id", id, "joints", m.N())
	c.JSON(http.StatusCreated, gin.H{"model_id": id, "joints": m.N()})
}

type postSimulationRequest struct {
	ModelID string `json:"model_id" binding:"required"`
}

// PostSimulation starts a simulation run for a previously submitted model
// and returns immediately with a simulation ID; the run proceeds in the
// background and is polled via GetSimulationHistory.
func (h *DataHandler) PostSimulation(c *gin.Context) {
	var req postSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mu.RLock()
	m, ok := h.models[req.ModelID]
	h.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown model_id"})
		return
	}

	record, err := h.records.CreateRecord(m.N())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// CreateRecord opens the record's own history file; release it now so
	// the Manager built in runSimulation can own that file exclusively.
	if err := record.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	simID := record.Hash
	h.mu.Lock()
	h.runs[simID] = &runState{status: simrunner.StatusInitializing, recordHash: record.Hash, model: m}
	h.mu.Unlock()

	go h.runSimulation(simID, m, record)

	c.JSON(http.StatusAccepted, gin.H{"simulation_id": simID})
}

func (h *DataHandler) runSimulation(simID string, m *model.Model, record *storage.Record) {
	mgr := simrunner.NewManager(h.cfg, *h.log)

	setStatus := func(status simrunner.ManagerStatus, err error) {
		h.mu.Lock()
		run := h.runs[simID]
		run.status = status
		run.err = err
		if status == simrunner.StatusCompleted || status == simrunner.StatusFailed {
			run.completedAt = time.Now()
		}
		h.mu.Unlock()
	}

	if err := mgr.Initialize(m, record.Path); err != nil {
		h.log.Error("simulation initialize failed", "simulation_id", simID, "error", err)
		setStatus(simrunner.StatusFailed, err)
		return
	}
	defer mgr.Close()

	setStatus(simrunner.StatusRunning, nil)

	if err := mgr.Run(); err != nil {
		h.log.Error("simulation run failed", "simulation_id", simID, "error", err)
		setStatus(simrunner.StatusFailed, err)
		return
	}

	setStatus(simrunner.StatusCompleted, nil)
}

// GetSimulationHistory returns the run's status, and once complete, its
// recorded (t, q, qdot) history as JSON rows.
func (h *DataHandler) GetSimulationHistory(c *gin.Context) {
	id := c.Param("id")

	h.mu.RLock()
	run, ok := h.runs[id]
	h.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown simulation_id"})
		return
	}

	if run.status != simrunner.StatusCompleted {
		c.JSON(http.StatusOK, gin.H{"status": run.status})
		return
	}

	record, err := h.records.GetRecord(run.recordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	headers, rows, err := record.History.ReadHeadersAndData()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  run.status,
		"headers": headers,
		"rows":    rows,
	})
}

// GetSimulationReport renders an HTML report (plots and testable
// properties) for a completed run.
func (h *DataHandler) GetSimulationReport(c *gin.Context) {
	id := c.Param("id")

	h.mu.RLock()
	run, ok := h.runs[id]
	h.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown simulation_id"})
		return
	}
	if run.status != simrunner.StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "simulation has not completed", "status": run.status})
		return
	}

	record, err := h.records.GetRecord(run.recordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	history, err := sampleHistoryFromRecord(record, run.model.N())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	gen, err := report.NewGenerator(h.log, record.Path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary := storage.SimulationData{
		ModelName: h.cfg.App.Name,
		NumJoints: run.model.N(),
		TEnd:      h.cfg.Engine.MaxTime,
		Steps:     len(history),
	}

	data, err := gen.Build(run.model, summary, history)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := report.RenderHTML(c.Writer, data); err != nil {
		h.log.Error("failed to render report", "simulation_id", id, "error", err)
	}
}

// sampleHistoryFromRecord reads a record's persisted history back into
// Samples, for handing to the report generator.
func sampleHistoryFromRecord(record *storage.Record, numJoints int) ([]simulation.Sample, error) {
	_, rows, err := record.History.ReadHeadersAndData()
	if err != nil {
		return nil, err
	}

	samples := make([]simulation.Sample, 0, len(rows))
	for _, row := range rows {
		if len(row) != 1+2*numJoints {
			return nil, fmt.Errorf("history row has %d fields, want %d", len(row), 1+2*numJoints)
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid time field %q: %w", row[0], err)
		}
		q := make([]float64, numJoints)
		qdot := make([]float64, numJoints)
		for i := 0; i < numJoints; i++ {
			q[i], err = strconv.ParseFloat(row[1+i], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid q_%d field: %w", i, err)
			}
			qdot[i], err = strconv.ParseFloat(row[1+numJoints+i], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid qdot_%d field: %w", i, err)
			}
		}
		samples = append(samples, simulation.Sample{T: t, Q: q, Qdot: qdot})
	}
	return samples, nil
}

func indexPage(appName, version string, records []*storage.Record) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>%s</title></head>
<body>
<h1>%s %s</h1>
<p>POST a model document to /models, then POST {"model_id"} to /simulations.</p>
<h2>Runs</h2>
<ul>
`, appName, appName, version)
		if err != nil {
			return err
		}
		for _, r := range records {
			if _, err := fmt.Fprintf(w, "<li>%s &mdash; %s</li>\n", r.Hash, r.LastModified.Format(time.RFC3339)); err != nil {
				return err
			}
		}
		_, err = fmt.Fprint(w, "</ul></body></html>")
		return err
	})
}
