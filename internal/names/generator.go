// Package names turns a locale and gender into three distinct synthetic names.
package names

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/m3rciful/namebot/core/logger"
	"github.com/m3rciful/namebot/internal/fakedata"
)

// DefaultMaxAttempts bounds the number of draws made for one triple.
const DefaultMaxAttempts = 50

// Triple is exactly three names.
type Triple [3]string

// Sentinel is returned in place of names when generation fails.
var Sentinel = Triple{"Generation Failed", "Please Try Another", "Country or Gender"}

// ErrExhausted is reported when the attempt budget runs out before three distinct names were drawn.
var ErrExhausted = errors.New("names: attempts exhausted")

// Source is the locale-aware name producer.
type Source interface {
	Supports(locale string) (fakedata.Capabilities, error)
	Name(locale string, p fakedata.Producer) (string, error)
}

// Result describes one generation run.
type Result struct {
	Names    Triple
	Producer fakedata.Producer
	Attempts int
	Err      error
}

// Failed reports whether Names holds the sentinel.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Generator draws names from a Source. It holds no mutable state.
type Generator struct {
	src         Source
	maxAttempts int
}

// NewGenerator wraps src. maxAttempts <= 0 uses DefaultMaxAttempts; values
// below 3 are raised to 3.
func NewGenerator(src Source, maxAttempts int) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if maxAttempts < len(Triple{}) {
		maxAttempts = len(Triple{})
	}
	return &Generator{src: src, maxAttempts: maxAttempts}
}

// Generate returns three distinct names, or Sentinel on any failure.
func (g *Generator) Generate(ctx context.Context, locale string, gender Gender) Triple {
	return g.GenerateDetailed(ctx, locale, gender).Names
}

// GenerateDetailed is Generate with the producer and attempt count exposed.
// It never panics; failures are logged and downgraded to Sentinel.
func (g *Generator) GenerateDetailed(ctx context.Context, locale string, gender Gender) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("names: producer panic: %v", r)
		}
		if res.Err != nil {
			res.Names = Sentinel
			logger.Error(ctx, logger.ComponentNames, "names.generate",
				slog.String("status", "fail"),
				slog.String("locale", locale),
				slog.String("gender", string(gender)),
				slog.String("strategy", res.Producer.String()),
				slog.Int("attempts", res.Attempts),
				slog.String("err", res.Err.Error()),
			)
			return
		}
		logger.Debug(ctx, logger.ComponentNames, "names.generate",
			slog.String("status", "ok"),
			slog.String("locale", locale),
			slog.String("gender", string(gender)),
			slog.String("strategy", res.Producer.String()),
			slog.Int("attempts", res.Attempts),
		)
	}()

	caps, err := g.src.Supports(locale)
	if err != nil {
		res.Err = err
		return res
	}
	res.Producer = ResolveProducer(caps, gender)

	seen := make(map[string]struct{}, len(res.Names))
	n := 0
	for n < len(res.Names) {
		if res.Attempts == g.maxAttempts {
			res.Err = fmt.Errorf("%w: %d distinct of %d after %d draws", ErrExhausted, n, len(res.Names), res.Attempts)
			return res
		}
		res.Attempts++

		name, err := g.src.Name(locale, res.Producer)
		if err != nil {
			res.Err = err
			return res
		}
		if _, dup := seen[name]; dup || name == "" {
			continue
		}
		seen[name] = struct{}{}
		res.Names[n] = name
		n++
	}
	return res
}
