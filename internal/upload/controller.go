// Package upload drives the résumé submission workflow: picking or dropping a
// file, validating it, sending it for analysis and handing the result to the
// report view.
package upload

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"alfredoptarigan/resume-analyzer/internal/handoff"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// SlowNoticeDelay is how long an analysis may run before the user is told it
// will take a while.
const SlowNoticeDelay = 5 * time.Second

type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseFileReady    Phase = "file_ready"
	PhaseUploading    Phase = "uploading"
	PhaseAwaitingSlow Phase = "awaiting_slow"
)

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	Phase    Phase
	File     *models.FileHandle
	Error    string
	Dragging bool
}

// Uploading reports whether a request is in flight.
func (s Snapshot) Uploading() bool {
	return s.Phase == PhaseUploading || s.Phase == PhaseAwaitingSlow
}

// Slow reports whether the slow-notice hint should be visible.
func (s Snapshot) Slow() bool {
	return s.Phase == PhaseAwaitingSlow
}

// Hooks connect the controller to its host view. Every hook is optional and is
// called without the controller lock held.
type Hooks struct {
	// NavigateToReport fires once per successful submission, after the
	// payload is in the handoff store.
	NavigateToReport func()
	// ResetInput clears the host's file input so the same file can be
	// picked again.
	ResetInput func()
	// Changed receives the state after every transition, in transition
	// order; a snapshot overtaken by a newer one is dropped. It must not
	// call back into the controller's mutating methods.
	Changed func(Snapshot)
}

type Option func(*Controller)

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.scheduler = s
	}
}

func WithHooks(h Hooks) Option {
	return func(c *Controller) {
		c.hooks = h
	}
}

// Controller owns one upload session. All transitions are serialized.
type Controller struct {
	analyzer  services.AnalyzerClient
	handoff   handoff.Store
	scheduler Scheduler
	hooks     Hooks

	mu       sync.Mutex
	phase    Phase
	file     *models.FileHandle
	errMsg   string
	dragging bool
	attempt  uint64
	slowTask Task
	seq      uint64

	notifyMu  sync.Mutex
	delivered uint64

	inflight sync.WaitGroup
}

func NewController(analyzer services.AnalyzerClient, store handoff.Store, opts ...Option) *Controller {
	c := &Controller{
		analyzer:  analyzer,
		handoff:   store,
		scheduler: NewScheduler(),
		phase:     PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SelectFile stages a candidate from the picker or a drop. A rejected file
// leaves the session idle with the validation message as its error.
func (c *Controller) SelectFile(candidate models.FileHandle) error {
	c.mu.Lock()
	if c.uploadingLocked() {
		c.mu.Unlock()
		return ErrUploadInProgress
	}

	err := Validate(candidate)
	if err != nil {
		c.file = nil
		c.phase = PhaseIdle
		c.errMsg = err.Error()
	} else {
		staged := candidate
		c.file = &staged
		c.phase = PhaseFileReady
		c.errMsg = ""
	}
	snap, seq := c.commitLocked()
	c.mu.Unlock()

	c.resetInput()
	c.changed(snap, seq)
	return err
}

// DragOver marks a drag in progress over the drop zone.
func (c *Controller) DragOver() {
	c.setDragging(true)
}

// DragLeave clears the drag marker.
func (c *Controller) DragLeave() {
	c.setDragging(false)
}

// Drop clears the drag marker and stages the first dropped file. Any further
// files are ignored.
func (c *Controller) Drop(files []models.FileHandle) error {
	c.setDragging(false)
	if len(files) == 0 {
		return nil
	}
	return c.SelectFile(files[0])
}

// RemoveFile discards the staged file and any error.
func (c *Controller) RemoveFile() error {
	c.mu.Lock()
	if c.uploadingLocked() {
		c.mu.Unlock()
		return ErrUploadInProgress
	}
	c.file = nil
	c.phase = PhaseIdle
	c.errMsg = ""
	snap, seq := c.commitLocked()
	c.mu.Unlock()

	c.resetInput()
	c.changed(snap, seq)
	return nil
}

// Submit sends the staged file for analysis and returns without waiting for
// the answer. Calling it again while the request is in flight does nothing.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.uploadingLocked() {
		c.mu.Unlock()
		return nil
	}
	if c.phase != PhaseFileReady || c.file == nil {
		c.mu.Unlock()
		return ErrNoFileSelected
	}

	c.attempt++
	attempt := c.attempt
	file := *c.file
	c.phase = PhaseUploading
	c.errMsg = ""
	c.slowTask = c.scheduler.AfterFunc(SlowNoticeDelay, func() {
		c.markSlow(attempt)
	})
	c.inflight.Add(1)
	snap, seq := c.commitLocked()
	c.mu.Unlock()

	c.changed(snap, seq)

	go c.run(ctx, attempt, file)
	return nil
}

// Acknowledge dismisses the error notice. The session always comes back idle
// with nothing staged.
func (c *Controller) Acknowledge() {
	c.mu.Lock()
	if c.uploadingLocked() {
		c.mu.Unlock()
		return
	}
	c.file = nil
	c.phase = PhaseIdle
	c.errMsg = ""
	snap, seq := c.commitLocked()
	c.mu.Unlock()

	c.resetInput()
	c.changed(snap, seq)
}

// Reset starts the session over. A request still in flight is left to finish
// but its result is discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.attempt++
	c.cancelSlowLocked()
	c.file = nil
	c.phase = PhaseIdle
	c.errMsg = ""
	c.dragging = false
	snap, seq := c.commitLocked()
	c.mu.Unlock()

	c.changed(snap, seq)
}

// Wait blocks until every request started by Submit has been applied or
// discarded.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) run(ctx context.Context, attempt uint64, file models.FileHandle) {
	defer c.inflight.Done()

	log.Printf("📤 Submitting %s (%s) for analysis\n", file.Name, file.SizeKB())
	resp, err := c.analyzer.Analyze(ctx, file)
	c.finish(attempt, resp, err)
}

func (c *Controller) finish(attempt uint64, resp *models.AnalyzeResponse, err error) {
	c.mu.Lock()
	if attempt != c.attempt || !c.uploadingLocked() {
		c.mu.Unlock()
		log.Println("⚠️  Discarding analysis result for a session that moved on")
		return
	}

	c.cancelSlowLocked()

	if err == nil {
		if putErr := c.handoff.Put(resp.Analysis); putErr != nil {
			err = fmt.Errorf("failed to store %s: %w", handoff.Key, putErr)
		}
	}

	if err != nil {
		c.file = nil
		c.phase = PhaseIdle
		c.errMsg = err.Error()
		snap, seq := c.commitLocked()
		c.mu.Unlock()

		log.Printf("❌ Analysis failed: %v\n", err)
		c.changed(snap, seq)
		return
	}

	log.Printf("✅ Analysis received (status: %s)\n", resp.Status)

	// Navigation happens while the session still reads as uploading, so a
	// host never observes the idle state without the pending navigation.
	if c.hooks.NavigateToReport != nil {
		c.mu.Unlock()
		c.hooks.NavigateToReport()
		c.mu.Lock()
		if attempt != c.attempt {
			c.mu.Unlock()
			return
		}
	}

	c.file = nil
	c.phase = PhaseIdle
	c.errMsg = ""
	snap, seq := c.commitLocked()
	c.mu.Unlock()

	c.changed(snap, seq)
}

func (c *Controller) markSlow(attempt uint64) {
	c.mu.Lock()
	if attempt != c.attempt || c.phase != PhaseUploading {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseAwaitingSlow
	snap, seq := c.commitLocked()
	c.mu.Unlock()

	c.changed(snap, seq)
}

func (c *Controller) setDragging(dragging bool) {
	c.mu.Lock()
	if c.dragging == dragging {
		c.mu.Unlock()
		return
	}
	c.dragging = dragging
	snap, seq := c.commitLocked()
	c.mu.Unlock()

	c.changed(snap, seq)
}

func (c *Controller) cancelSlowLocked() {
	if c.slowTask != nil {
		c.slowTask.Stop()
		c.slowTask = nil
	}
}

func (c *Controller) uploadingLocked() bool {
	return c.phase == PhaseUploading || c.phase == PhaseAwaitingSlow
}

func (c *Controller) commitLocked() (Snapshot, uint64) {
	c.seq++
	return c.snapshotLocked(), c.seq
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:    c.phase,
		Error:    c.errMsg,
		Dragging: c.dragging,
	}
	if c.file != nil {
		file := *c.file
		snap.File = &file
	}
	return snap
}

func (c *Controller) resetInput() {
	if c.hooks.ResetInput != nil {
		c.hooks.ResetInput()
	}
}

func (c *Controller) changed(snap Snapshot, seq uint64) {
	if c.hooks.Changed == nil {
		return
	}

	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if seq <= c.delivered {
		return
	}
	c.delivered = seq
	c.hooks.Changed(snap)
}
