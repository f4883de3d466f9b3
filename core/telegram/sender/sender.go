// Package sender wraps outbound Telegram calls with timing and failure logs.
package sender

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/namebot/core/logger"
	"github.com/m3rciful/namebot/core/telegram/netutil"
)

// Do runs one outbound call. Failures are logged with a redacted message and
// an error kind, then returned unchanged. Calls are never retried.
func Do(ctx context.Context, action, endpoint string, run func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	err := run()
	elapsed := logger.RoundMS(time.Since(start))

	attrs := []slog.Attr{slog.String("action", action)}
	if endpoint != "" {
		attrs = append(attrs, slog.String("endpoint", endpoint))
	}
	attrs = append(attrs, slog.Duration("elapsed", elapsed))

	if err != nil {
		attrs = append(attrs,
			slog.String("status", "fail"),
			slog.String("err", netutil.Redact(err)),
			slog.String("error_kind", netutil.Classify(err)),
		)
		logger.Error(ctx, logger.ComponentSender, "send.fail", attrs...)
		return err
	}
	if logger.ShouldSampleDebug() {
		attrs = append(attrs, slog.String("status", "ok"))
		logger.Debug(ctx, logger.ComponentSender, "send.success", attrs...)
	}
	return nil
}
