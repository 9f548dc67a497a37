// Package raw reads the environment without logging, for the logger's own bootstrap
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view of the environment
type Conf struct{ prefix string }

// New is the unprefixed root
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Get returns the trimmed value or def
func (c Conf) Get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(c.prefix + key)); v != "" {
		return v
	}
	return def
}

// GetBool accepts what strconv.ParseBool does, plus yes. Anything else is def
func (c Conf) GetBool(key string, def bool) bool {
	s := strings.ToLower(c.Get(key, ""))
	if s == "yes" {
		return true
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	return def
}

// GetInt returns a non negative integer or def
func (c Conf) GetInt(key string, def int) int {
	if n, err := strconv.Atoi(c.Get(key, "")); err == nil && n >= 0 {
		return n
	}
	return def
}
