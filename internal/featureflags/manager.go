// Package featureflags gates optional group surfaces behind a FEATURE_FLAGS
// list such as "group_invites=on,group_join_requests=25%".
package featureflags

import (
	"maps"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Flags known to the group surface.
const (
	GroupInvites      = "group_invites"
	GroupJoinRequests = "group_join_requests"
)

// Manager evaluates flags parsed once at startup. A nil Manager has every
// flag off.
type Manager struct {
	flags map[string]string
}

// NewManager parses a comma-separated key=value list, skipping malformed pairs.
func NewManager(raw string) *Manager {
	flags := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key, value = normalize(key), normalize(value)
		if key == "" || value == "" {
			continue
		}
		flags[key] = value
	}
	return &Manager{flags: flags}
}

// Enabled reports whether name is on for userID. Values are on/true/1,
// off/false/0, or N% for a stable per-user rollout.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}
	value, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}
	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	pctRaw, isPct := strings.CutSuffix(value, "%")
	if !isPct {
		return false
	}
	pct, err := strconv.Atoi(pctRaw)
	switch {
	case err != nil || pct <= 0:
		return false
	case pct >= 100:
		return true
	case userID == 0:
		return false
	}
	return bucket(name, userID) < pct
}

// Raw returns a copy of the configured values.
func (m *Manager) Raw() map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return maps.Clone(m.flags)
}

// Snapshot evaluates every configured flag for one user.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool)
	if m == nil {
		return out
	}
	for name := range m.flags {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func bucket(name string, userID uint) int {
	return int(xxhash.Sum64String(normalize(name)+":"+strconv.FormatUint(uint64(userID), 10)) % 100)
}
