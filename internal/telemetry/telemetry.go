// Package telemetry tracks agent executions, token usage and cost for one
// process. Counters are mirrored into prometheus so the HTTP server's
// /metrics endpoint exposes them.
package telemetry

import (
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/renatus-madrigal/article-assistant/config"
)

var (
	agentExecutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "article_agent_executions_total",
		Help: "Agent executions by role and outcome.",
	}, []string{"agent", "outcome"})

	agentDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "article_agent_duration_seconds",
		Help:    "Agent execution duration by role.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	}, []string{"agent"})

	llmTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "article_llm_tokens_total",
		Help: "Tokens used by model and direction.",
	}, []string{"model", "direction"})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "article_runs_total",
		Help: "Workflow runs by outcome.",
	}, []string{"outcome"})
)

// AgentEvent is one agent execution.
type AgentEvent struct {
	Agent        string
	Model        string
	Duration     time.Duration
	Success      bool
	InputTokens  int64
	OutputTokens int64
	Cost         float64
}

// RunEvent is one complete workflow run.
type RunEvent struct {
	RunID    string
	Topic    string
	Duration time.Duration
	Success  bool
	Cost     float64
	Tokens   int64
	Sections int
	Words    int
}

// Telemetry aggregates in-process metrics and cost tracking.
type Telemetry struct {
	mu     sync.Mutex
	config config.TelemetryConfig
	logger *log.Logger

	agentRuns   map[string]int64
	modelTokens map[string]int64
	totalCost   float64
	totalTokens int64
}

// New creates a telemetry instance.
func New(cfg config.TelemetryConfig) *Telemetry {
	return &Telemetry{
		config:      cfg,
		logger:      log.New(log.Writer(), "[TELEMETRY] ", log.LstdFlags),
		agentRuns:   make(map[string]int64),
		modelTokens: make(map[string]int64),
	}
}

// RecordAgentEvent records one agent execution.
func (t *Telemetry) RecordAgentEvent(event AgentEvent) {
	if !t.config.Enabled {
		return
	}

	outcome := "success"
	if !event.Success {
		outcome = "failure"
	}
	agentExecutions.WithLabelValues(event.Agent, outcome).Inc()
	agentDuration.WithLabelValues(event.Agent).Observe(event.Duration.Seconds())
	llmTokens.WithLabelValues(event.Model, "input").Add(float64(event.InputTokens))
	llmTokens.WithLabelValues(event.Model, "output").Add(float64(event.OutputTokens))

	t.mu.Lock()
	defer t.mu.Unlock()
	t.agentRuns[event.Agent]++
	t.modelTokens[event.Model] += event.InputTokens + event.OutputTokens
	t.totalCost += event.Cost
	t.totalTokens += event.InputTokens + event.OutputTokens

	if t.config.CostTracking {
		t.logger.Printf("agent=%s model=%s duration=%v tokens=%d cost=$%.4f success=%t",
			event.Agent, event.Model, event.Duration, event.InputTokens+event.OutputTokens, event.Cost, event.Success)
	}
}

// RecordRunEvent records one workflow run.
func (t *Telemetry) RecordRunEvent(event RunEvent) {
	if !t.config.Enabled {
		return
	}

	outcome := "success"
	if !event.Success {
		outcome = "failure"
	}
	runsTotal.WithLabelValues(outcome).Inc()

	t.logger.Printf("run=%s topic=%q duration=%v sections=%d words=%d tokens=%d cost=$%.4f success=%t",
		event.RunID, event.Topic, event.Duration, event.Sections, event.Words, event.Tokens, event.Cost, event.Success)
}

// TotalCost reports the accumulated dollar cost.
func (t *Telemetry) TotalCost() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalCost
}

// TotalTokens reports the accumulated token count.
func (t *Telemetry) TotalTokens() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalTokens
}

// AgentRuns reports executions per agent role.
func (t *Telemetry) AgentRuns() map[string]int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int64, len(t.agentRuns))
	for k, v := range t.agentRuns {
		out[k] = v
	}
	return out
}
