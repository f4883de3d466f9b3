package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

type format string

const (
	formatJSON format = "json"
	formatKV   format = "kv"

	tsLayout = "2006-01-02T15:04:05.000Z07:00"
)

type handlerOptions struct {
	level  slog.Leveler
	sink   *sink
	format format
	order  []string
}

// handler renders records as single ordered lines. Attributes are flattened
// with dotted group prefixes; duration values are emitted as *_ms integers.
type handler struct {
	opts   handlerOptions
	rank   map[string]int
	attrs  []slog.Attr
	prefix string
}

func newHandler(opts handlerOptions) *handler {
	if opts.level == nil {
		opts.level = slog.LevelInfo
	}
	if len(opts.order) == 0 {
		opts.order = defaultKeyOrder
	}
	rank := make(map[string]int, len(opts.order))
	for i, k := range opts.order {
		if _, dup := rank[k]; !dup {
			rank[k] = i
		}
	}
	return &handler{opts: opts, rank: rank}
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level.Level()
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, prefixed(h.prefix, a))
	}
	return &clone
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = joinKey(h.prefix, name)
	return &clone
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	if h.opts.sink == nil {
		return fmt.Errorf("logger: sink not initialized")
	}

	e := newEntry()
	ts := r.Time.UTC()
	e.set("ts", ts.Truncate(time.Millisecond).Format(tsLayout))
	e.set("level", levelName(r.Level.String()))
	if h.opts.format == formatJSON {
		e.set("ts_unix_nano", ts.UnixNano())
	}

	for _, a := range h.attrs {
		e.add("", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		e.add(h.prefix, a)
		return true
	})

	h.fromContext(ctx, e)

	if rid, ok := e.str("rid"); ok {
		if short := CompactRID(rid); short != rid {
			if h.opts.format == formatJSON {
				e.setDefault("rid_full", rid)
			}
			e.set("rid", short)
		}
	}
	if ev, _ := e.str("event"); ev == "" {
		if r.Message != "" {
			e.set("event", r.Message)
		} else {
			e.set("event", "unknown")
		}
	}
	if c, _ := e.str("component"); c == "" {
		e.set("component", ComponentApp)
	}
	normalizeEnums(e)
	e.dropEmpty()

	keys := e.sorted(h.rank)
	var line []byte
	if h.opts.format == formatJSON {
		b, err := e.json(keys)
		if err != nil {
			return err
		}
		line = b
	} else {
		line = e.kv(keys)
	}
	return h.opts.sink.Write(append(line, '\n'))
}

func (h *handler) fromContext(ctx context.Context, e *entry) {
	m := metaFrom(ctx)
	if m.rid != "" {
		e.setDefault("rid", m.rid)
	}
	if m.updateID != 0 {
		e.setDefault("update_id", int64(m.updateID))
	}
	if m.userID != 0 {
		e.setDefault("user_id", m.userID)
	}
	if m.chatID != 0 {
		e.setDefault("chat_id", m.chatID)
	}
	if m.handler != "" {
		e.setDefault("handler", m.handler)
	}
}

func prefixed(prefix string, a slog.Attr) slog.Attr {
	if prefix == "" {
		return a
	}
	a.Key = joinKey(prefix, a.Key)
	return a
}

func joinKey(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case key == "":
		return prefix
	}
	return prefix + "." + key
}

// entry is an insertion-ordered field set for one record.
type entry struct {
	keys []string
	vals map[string]any
}

func newEntry() *entry {
	return &entry{vals: make(map[string]any, 16)}
}

func (e *entry) set(k string, v any) {
	if _, ok := e.vals[k]; !ok {
		e.keys = append(e.keys, k)
	}
	e.vals[k] = v
}

func (e *entry) setDefault(k string, v any) {
	if _, ok := e.vals[k]; !ok {
		e.set(k, v)
	}
}

func (e *entry) del(k string) {
	if _, ok := e.vals[k]; !ok {
		return
	}
	delete(e.vals, k)
	e.keys = slices.DeleteFunc(e.keys, func(s string) bool { return s == k })
}

func (e *entry) str(k string) (string, bool) {
	v, ok := e.vals[k]
	if !ok {
		return "", false
	}
	if s, isStr := v.(string); isStr {
		return s, true
	}
	return fmt.Sprint(v), true
}

func (e *entry) add(prefix string, a slog.Attr) {
	key := joinKey(prefix, a.Key)
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, child := range v.Group() {
			e.add(key, child)
		}
		return
	}
	if key == "" {
		return
	}
	if k, val, ok := scalar(key, v); ok {
		e.set(k, val)
	}
}

func (e *entry) dropEmpty() {
	for _, k := range slices.Clone(e.keys) {
		switch v := e.vals[k].(type) {
		case nil:
			e.del(k)
		case string:
			if v == "" {
				e.del(k)
			}
		}
	}
}

// sorted returns ranked keys first, then the rest alphabetically.
func (e *entry) sorted(rank map[string]int) []string {
	keys := slices.Clone(e.keys)
	slices.SortStableFunc(keys, func(a, b string) int {
		ra, oka := rank[a]
		rb, okb := rank[b]
		switch {
		case oka && okb:
			return ra - rb
		case oka:
			return -1
		case okb:
			return 1
		}
		return strings.Compare(a, b)
	})
	return keys
}

func (e *entry) json(keys []string) ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range keys {
		data, err := json.Marshal(e.vals[k])
		if err != nil {
			return nil, err
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(k))
		b.WriteByte(':')
		b.Write(data)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (e *entry) kv(keys []string) []byte {
	var b bytes.Buffer
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(kvValue(e.vals[k]))
	}
	return b.Bytes()
}

func kvValue(v any) string {
	s := fmt.Sprint(v)
	if strings.IndexFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) >= 0 {
		return strconv.Quote(s)
	}
	return s
}

// scalar converts a resolved value to a JSON-friendly scalar, renaming
// duration keys to carry a _ms suffix.
func scalar(key string, v slog.Value) (string, any, bool) {
	switch v.Kind() {
	case slog.KindString:
		return key, strings.TrimSpace(v.String()), true
	case slog.KindBool:
		return key, v.Bool(), true
	case slog.KindInt64:
		return key, v.Int64(), true
	case slog.KindUint64:
		if u := v.Uint64(); u <= math.MaxInt64 {
			return key, int64(u), true
		}
		return key, v.Uint64(), true
	case slog.KindFloat64:
		return key, v.Float64(), true
	case slog.KindDuration:
		return msKey(key), RoundMS(v.Duration()).Milliseconds(), true
	case slog.KindTime:
		return key, v.Time().UTC().Format(time.RFC3339Nano), true
	}

	switch x := v.Any().(type) {
	case nil:
		return key, nil, false
	case error:
		return key, x.Error(), true
	case time.Duration:
		return msKey(key), RoundMS(x).Milliseconds(), true
	case fmt.Stringer:
		return key, x.String(), true
	case string:
		return key, strings.TrimSpace(x), true
	default:
		return key, fmt.Sprint(x), true
	}
}

func msKey(key string) string {
	switch {
	case key == "duration":
		return "duration_ms"
	case strings.HasSuffix(key, "_ms"):
		return key
	}
	return key + "_ms"
}
