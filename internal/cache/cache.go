package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/MrToKa/WFC-sub003/internal/engine"
)

// MaxEntries bounds the cache so long-running servers with many projects
// cannot grow it without limit.
const MaxEntries = 1024

// Fingerprint returns a stable hex digest of any value: canonical msgpack
// (map keys sorted) hashed with SHA-256. Equal inputs always produce
// equal digests, which is what makes cached results safe to reuse.
//
// The value is first round-tripped through a generic decode so every
// string-keyed map, whatever its declared type, becomes a
// map[string]interface{} — the one shape the encoder's SetSortMapKeys
// actually sorts. Encoding the typed value directly would leave e.g.
// map[Category]CategorySettings in randomized iteration order.
func Fingerprint(v interface{}) (string, error) {
	raw, err := msgpack.Marshal(v)
	if err != nil {
		return "", err
	}
	var generic interface{}
	if err := msgpack.Unmarshal(raw, &generic); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(generic); err != nil {
		return "", err
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}

type key struct {
	trayID     string
	cablesFP   string
	settingsFP string
}

type entry struct {
	result   engine.TrayLoadResult
	storedAt time.Time
}

// ResultCache memoizes per-tray results keyed by (trayID, cable-set
// fingerprint, settings fingerprint). The engine is deterministic, so no
// invalidation is needed: a changed input changes the key.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[key]entry
}

// NewResultCache creates an empty cache.
func NewResultCache() *ResultCache {
	return &ResultCache{entries: make(map[key]entry)}
}

// Get returns a cached result for the key, if present.
func (c *ResultCache) Get(trayID, cablesFP, settingsFP string) (engine.TrayLoadResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key{trayID, cablesFP, settingsFP}]
	return e.result, ok
}

// Put stores a result, evicting the oldest entries when full. Overwriting
// an existing key never evicts: the size only grows on a new key.
func (c *ResultCache) Put(trayID, cablesFP, settingsFP string, result engine.TrayLoadResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key{trayID, cablesFP, settingsFP}
	if _, exists := c.entries[k]; !exists && len(c.entries) >= MaxEntries {
		c.evictOldestLocked(len(c.entries) - MaxEntries + 1)
	}
	c.entries[k] = entry{result: result, storedAt: time.Now()}
}

// Len reports the number of cached results.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ResultCache) evictOldestLocked(n int) {
	for ; n > 0; n-- {
		var oldest key
		var oldestAt time.Time
		first := true
		for k, e := range c.entries {
			if first || e.storedAt.Before(oldestAt) {
				oldest, oldestAt, first = k, e.storedAt, false
			}
		}
		if first {
			return
		}
		delete(c.entries, oldest)
	}
}
