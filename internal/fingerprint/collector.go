package fingerprint

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SignalSource gathers the raw device/client signals used to derive a
// fingerprint. Implementations decide what the signal set contains.
type SignalSource interface {
	Collect(ctx context.Context) (map[string]string, error)
}

// Record is the outcome of one collection attempt. Value is always
// non-empty: a failed collection yields a fallback pseudo-identity
// instead of an error-only result.
type Record struct {
	Value   string
	Loading bool
	Err     error
	Raw     map[string]string
}

// Collector reduces a signal set to a stable hash. Only the latest
// record is kept across refreshes.
type Collector struct {
	source SignalSource
	logger *zap.Logger

	mu     sync.RWMutex
	latest Record
}

// NewCollector creates a new Collector
func NewCollector(source SignalSource, logger *zap.Logger) *Collector {
	return &Collector{
		source: source,
		logger: logger,
	}
}

// Latest returns the most recent record. Before the first Refresh the
// record is in its loading state.
func (c *Collector) Latest() Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

// Refresh runs one collection attempt and stores the result. On any
// source failure the record carries the error plus a fallback identity,
// so consumers always get a usable value.
func (c *Collector) Refresh(ctx context.Context) Record {
	c.mu.Lock()
	c.latest = Record{Loading: true}
	c.mu.Unlock()

	var record Record
	signals, err := c.source.Collect(ctx)
	if err != nil {
		c.logger.Warn("Signal collection failed, using fallback identity", zap.Error(err))
		record = Record{Value: fallbackIdentity(), Err: err}
	} else {
		record = Record{Value: hashSignals(signals), Raw: signals}
	}

	c.mu.Lock()
	c.latest = record
	c.mu.Unlock()
	return record
}

// hashSignals canonicalizes the signal map (sorted keys) and hashes it,
// so the same signal set always produces the same value.
func hashSignals(signals map[string]string) string {
	keys := make([]string, 0, len(signals))
	for k := range signals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([][2]string, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, [2]string{k, signals[k]})
	}

	canonical, _ := json.Marshal(ordered)
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

// fallbackIdentity builds a pseudo-identity of the shape
// fb-<unix-ms>-<random-suffix>.
func fallbackIdentity() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; a
		// time-only identity still satisfies the contract here.
		return fmt.Sprintf("fb-%d", time.Now().UnixMilli())
	}
	return fmt.Sprintf("fb-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix))
}
