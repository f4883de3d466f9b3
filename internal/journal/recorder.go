package journal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/namebot/core/logger"
	"github.com/m3rciful/namebot/internal/names"
)

const recordTimeout = 2 * time.Second

// Store persists events.
type Store interface {
	Record(ctx context.Context, e Event) error
}

// Recorder writes generation outcomes to a Store in the background and logs,
// never returns, write failures. Wait blocks until pending writes are done.
type Recorder struct {
	store   Store
	timeout time.Duration
	now     func() time.Time
	pending sync.WaitGroup
}

// NewRecorder wraps store. A nil store yields a Recorder that drops events.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store, timeout: recordTimeout, now: time.Now}
}

// Record queues the outcome of one generation and returns at once. The write
// outlives ctx cancellation and is bounded by the recorder timeout.
func (r *Recorder) Record(ctx context.Context, locale string, gender names.Gender, res names.Result) {
	if r == nil || r.store == nil {
		return
	}
	e := NewEvent(locale, gender, res, r.now())
	ctx = context.WithoutCancel(ctx)

	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		r.write(ctx, e)
	}()
}

// Wait blocks until every queued event has been written or has failed.
func (r *Recorder) Wait() {
	if r == nil {
		return
	}
	r.pending.Wait()
}

func (r *Recorder) write(ctx context.Context, e Event) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	err := r.store.Record(ctx, e)
	took := logger.RoundMS(time.Since(start))
	if err != nil {
		logger.Warn(ctx, logger.ComponentJournal, "journal.record",
			slog.String("status", "fail"),
			slog.String("locale", e.Locale),
			slog.String("gender", e.Gender),
			slog.Duration("duration", took),
			slog.String("err", err.Error()),
		)
		return
	}
	if logger.ShouldSampleDebug() {
		logger.Debug(ctx, logger.ComponentJournal, "journal.record",
			slog.String("status", "ok"),
			slog.String("locale", e.Locale),
			slog.Bool("failed", e.Failed),
			slog.Duration("duration", took),
		)
	}
}
