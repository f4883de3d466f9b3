package logger

import "strings"

// defaultKeyOrder puts identity and outcome first; unlisted keys follow alphabetically.
var defaultKeyOrder = []string{
	"ts",
	"level",
	"component",
	"event",
	"status",
	"rid",
	"rid_full",
	"ts_unix_nano",
	"update_id",
	"user_id",
	"chat_id",
	"chat_type",
	"handler",
	"cb_key",
	"kind",
	"outcome",
	"duration_ms",
	"messages",
	"kb",
	"locale",
	"label",
	"gender",
	"strategy",
	"attempts",
	"page",
	"pages",
	"query",
	"matches",
	"count",
	"payload",
	"lang",
	"username",
	"mode",
	"listen",
	"public_url",
	"db",
	"host",
	"port",
	"err",
	"err_code",
	"error_kind",
	"cause",
}

var levelNames = map[string]string{
	"debug":   "DEBUG",
	"info":    "INFO",
	"warn":    "WARN",
	"warning": "WARN",
	"error":   "ERROR",
}

// Values outside these sets are dropped for outcome and kept verbatim for status.
var (
	knownStatus  = set("ok", "fail", "skip", "cancelled")
	knownOutcome = set("ok", "fail", "cancelled")
)

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func levelName(level string) string {
	if name, ok := levelNames[strings.ToLower(level)]; ok {
		return name
	}
	return strings.ToUpper(level)
}

func normalizeEnums(e *entry) {
	if s, ok := e.str("status"); ok {
		s = strings.ToLower(strings.TrimSpace(s))
		if _, known := knownStatus[s]; known {
			e.set("status", s)
		}
	}
	if o, ok := e.str("outcome"); ok {
		o = strings.ToLower(strings.TrimSpace(o))
		if _, known := knownOutcome[o]; known {
			e.set("outcome", o)
		} else {
			e.del("outcome")
		}
	}
}
