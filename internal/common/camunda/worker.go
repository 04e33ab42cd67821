// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"sync"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	"mafatih/internal/common/config"
	"mafatih/internal/common/observability"
)

type HandlerFunc func(client worker.JobClient, job entities.Job)

// Pool owns the job workers opened on one client so they can be closed
// together on shutdown.
type Pool struct {
	client  *Client
	obs     *observability.Observability
	logger  *zap.Logger
	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewPool(client *Client, obs *observability.Observability, log *zap.Logger) *Pool {
	if obs == nil {
		obs = observability.NewNoop()
	}
	return &Pool{
		client:  client,
		obs:     obs,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a job worker for taskType. Disabled workers are logged and
// skipped. Every handled job is timed into the job duration instrument.
func (p *Pool) Start(taskType string, wcfg config.WorkerConfig, handler HandlerFunc) {
	if !wcfg.Enabled {
		p.logger.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	timed := func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		handler(client, job)
		ctx := context.Background()
		p.obs.RecordJobProcessed(ctx, "handled")
		p.obs.RecordJobDuration(ctx, time.Since(start), "handled")
	}

	jobWorker := p.client.GetClient().NewJobWorker().
		JobType(taskType).
		Handler(timed).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	p.mu.Lock()
	p.workers[taskType] = jobWorker
	p.mu.Unlock()

	p.logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}

// Running lists the task types with an open worker.
func (p *Pool) Running() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.workers))
	for t := range p.workers {
		types = append(types, t)
	}
	return types
}

// Stop closes every worker and waits for in-flight jobs to drain.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for taskType, w := range p.workers {
		p.logger.Info("stopping worker", zap.String("taskType", taskType))
		w.Close()
		w.AwaitClose()
	}
	p.workers = make(map[string]worker.JobWorker)
}
