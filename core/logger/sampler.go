package logger

import (
	"strconv"
	"strings"
	"sync/atomic"
)

type ratio struct{ num, den uint64 }

// sampler lets num out of every den calls through. A zero ratio allows everything.
type sampler struct {
	r atomic.Pointer[ratio]
	n atomic.Uint64
}

func newSampler(num, den int) *sampler {
	s := &sampler{}
	s.set(num, den)
	return s
}

func (s *sampler) set(num, den int) {
	if num <= 0 || den <= 0 {
		s.r.Store(nil)
		return
	}
	s.r.Store(&ratio{num: uint64(min(num, den)), den: uint64(den)})
	s.n.Store(0)
}

func (s *sampler) allow() bool {
	r := s.r.Load()
	if r == nil {
		return true
	}
	return (s.n.Add(1)-1)%r.den < r.num
}

// parseRatio accepts "num/den", a bare "den" meaning 1/den, or "0"/"off" to
// disable sampling (every line is written).
func parseRatio(raw string) (int, int, bool) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	switch raw {
	case "":
		return 0, 0, false
	case "0", "off", "all":
		return 0, 0, true
	}
	if a, b, ok := strings.Cut(raw, "/"); ok {
		num, err1 := strconv.Atoi(strings.TrimSpace(a))
		den, err2 := strconv.Atoi(strings.TrimSpace(b))
		if err1 != nil || err2 != nil || num <= 0 || den <= 0 {
			return 0, 0, false
		}
		return num, den, true
	}
	den, err := strconv.Atoi(raw)
	if err != nil || den <= 0 {
		return 0, 0, false
	}
	return 1, den, true
}
