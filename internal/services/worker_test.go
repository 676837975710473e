package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingAnalyzer struct {
	running int32
	peak    int32
	release chan struct{}
}

func (b *blockingAnalyzer) Analyze(ctx context.Context, filePath, mimeType string) (string, error) {
	n := atomic.AddInt32(&b.running, 1)
	for {
		peak := atomic.LoadInt32(&b.peak)
		if n <= peak || atomic.CompareAndSwapInt32(&b.peak, peak, n) {
			break
		}
	}
	<-b.release
	atomic.AddInt32(&b.running, -1)
	return "analysis of " + filePath, nil
}

func TestWorker_SubmitReturnsResult(t *testing.T) {
	analyzer := &blockingAnalyzer{release: make(chan struct{})}
	close(analyzer.release)
	w := NewWorker(analyzer, 2)
	w.Start(context.Background())
	defer w.Stop()

	analysis, err := w.Submit(context.Background(), "/tmp/a.pdf", "application/pdf")

	require.NoError(t, err)
	assert.Equal(t, "analysis of /tmp/a.pdf", analysis)
}

func TestWorker_BoundsConcurrency(t *testing.T) {
	analyzer := &blockingAnalyzer{release: make(chan struct{})}
	w := NewWorker(analyzer, 2)
	w.Start(context.Background())
	defer w.Stop()

	done := make(chan struct{}, 4)
	for i := 0; i < 4; i++ {
		go func() {
			_, _ = w.Submit(context.Background(), "/tmp/a.pdf", "application/pdf")
			done <- struct{}{}
		}()
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&analyzer.running) == 2
	}, time.Second, 5*time.Millisecond)

	close(analyzer.release)
	for i := 0; i < 4; i++ {
		<-done
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&analyzer.peak))
}

func TestWorker_SubmitAfterStop(t *testing.T) {
	w := NewWorker(&blockingAnalyzer{release: make(chan struct{})}, 1)
	w.Start(context.Background())
	w.Stop()

	// The queue has room, so the job may be accepted; the context bounds the wait.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := w.Submit(ctx, "/tmp/a.pdf", "application/pdf")

	assert.Error(t, err)
}
