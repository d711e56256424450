package pkgconfig

import "io"

// Config is a read-only view over the application configuration.
type Config interface {
	io.Closer

	GetInt(key string) int64
	GetBool(key string) bool
	GetFloat(key string) float64
	GetString(key string) string
	GetBinary(key string) []byte
	GetArray(key string) []string
	GetMap(key string) map[string]string
	IsSet(key string) bool
}

// IntOr returns the value for key, or def when the key is missing or not positive.
func IntOr(cfg Config, key string, def int64) int64 {
	if cfg == nil || !cfg.IsSet(key) {
		return def
	}
	if v := cfg.GetInt(key); v > 0 {
		return v
	}
	return def
}
