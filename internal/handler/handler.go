package handler

import (
	"strconv"

	"backoffice-service/internal/upload"
	"backoffice-service/pkg/config"
)

var ingestor *upload.Ingestor

// Initialize wires handler-level dependencies from the loaded configuration
func Initialize(cfg *config.Config) {
	ingestor = upload.NewIngestor(cfg.Uploads.Dir)
}

// Helpers for reading loosely typed JSON payloads. The admin front end sends
// numbers both as JSON numbers and as strings, so both are accepted.

func asString(value interface{}) string {
	s, _ := value.(string)
	return s
}

func asFloat(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

func asInt(value interface{}) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		i, _ := strconv.Atoi(v)
		return i
	}
	return 0
}

func asUint(value interface{}) uint {
	f := asFloat(value)
	if f < 0 {
		return 0
	}
	return uint(f)
}

func asStringSlice(value interface{}) ([]string, bool) {
	raw, ok := value.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		out = append(out, asString(item))
	}
	return out, true
}
