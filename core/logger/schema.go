package logger

import "strings"

var levelNames = map[string]string{
	"debug":   "DEBUG",
	"info":    "INFO",
	"warn":    "WARN",
	"warning": "WARN",
	"error":   "ERROR",
}

// Values outside these sets are dropped from the outcome field and kept as-is for status.
var (
	knownStatus  = map[string]struct{}{"ok": {}, "fail": {}, "skip": {}, "retry": {}, "rate_limited": {}, "cancelled": {}}
	knownOutcome = map[string]struct{}{"ok": {}, "fail": {}, "ignored": {}, "advanced": {}, "started": {}, "welcomed": {}, "completed": {}, "failed": {}, "cancelled": {}, "rate_limited": {}}
)

func normalizeLevel(level string) string {
	if level == "" {
		return "INFO"
	}
	if mapped, ok := levelNames[strings.ToLower(level)]; ok {
		return mapped
	}
	return strings.ToUpper(level)
}

func normalizeEnum(v string, known map[string]struct{}) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return "", false
	}
	_, ok := known[v]
	return v, ok
}

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
	"flow_id",
	"handler",
	"state",
	"next_state",
	"input",
	"cb_key",
	"outcome",
	"duration_ms",
	"messages",
	"kb",
	"role",
	"table",
	"row_id",
	"payload",
	"lang",
	"username",
	"mode",
	"listen",
	"public_url",
	"driver",
	"db",
	"err",
	"err_code",
	"cause",
	"attempts",
	"backoff_ms",
}
