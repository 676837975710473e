package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

var ErrWorkerStopped = errors.New("worker stopped")

// Worker bounds how many analyses run at once.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	Submit(ctx context.Context, filePath, mimeType string) (string, error)
}

type analysisJob struct {
	id       uuid.UUID
	ctx      context.Context
	filePath string
	mimeType string
	result   chan analysisResult
}

type analysisResult struct {
	analysis string
	err      error
}

type worker struct {
	analyzer    ResumeAnalyzerService
	jobQueue    chan *analysisJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewWorker(analyzer ResumeAnalyzerService, concurrency int) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		analyzer:    analyzer,
		jobQueue:    make(chan *analysisJob, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping worker...")
		close(w.stopChan)
	})
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// Submit implements Worker. It blocks until the job is done or ctx ends.
func (w *worker) Submit(ctx context.Context, filePath, mimeType string) (string, error) {
	job := &analysisJob{
		id:       uuid.New(),
		ctx:      ctx,
		filePath: filePath,
		mimeType: mimeType,
		result:   make(chan analysisResult, 1),
	}

	select {
	case w.jobQueue <- job:
		log.Printf("📥 Job %s enqueued\n", job.id)
	case <-w.stopChan:
		return "", ErrWorkerStopped
	case <-ctx.Done():
		return "", fmt.Errorf("failed to enqueue job: %w", ctx.Err())
	}

	select {
	case res := <-job.result:
		return res.analysis, res.err
	case <-ctx.Done():
		return "", fmt.Errorf("job %s abandoned: %w", job.id, ctx.Err())
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			return
		case job := <-w.jobQueue:
			if job.ctx.Err() != nil {
				job.result <- analysisResult{err: job.ctx.Err()}
				continue
			}

			log.Printf("👷 Worker #%d processing job %s\n", workerID, job.id)
			analysis, err := w.analyzer.Analyze(job.ctx, job.filePath, job.mimeType)
			if err != nil {
				log.Printf("❌ Worker #%d failed to process job %s: %v\n", workerID, job.id, err)
			} else {
				log.Printf("✅ Worker #%d completed job %s\n", workerID, job.id)
			}
			job.result <- analysisResult{analysis: analysis, err: err}
		}
	}
}
