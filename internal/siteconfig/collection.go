package siteconfig

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rijkvp/articlex/pkg/failure"
)

//go:embed defaults/*.txt
var embeddedDefaults embed.FS

// Collection is the C2 config store: embedded defaults, optionally
// shadowed by a user directory. Get fills a per-host cache on first lookup;
// the cache is guarded by mu, so a Collection may be shared across
// concurrent invocations (§5 "Shared resources").
type Collection struct {
	mu      sync.RWMutex
	cache   map[string]ConfigEntry
	userDir string
	global  ConfigEntry
}

// NewCollection loads the embedded global.txt, optionally overlaid by a
// user directory's global.txt, and returns a ready-to-use Collection. Any
// OS handle opened while reading the user directory is released before
// return regardless of parse outcome, per §5's "scoped acquisition".
func NewCollection(userConfigDir string) (*Collection, failure.ClassifiedError) {
	c := &Collection{
		cache:   make(map[string]ConfigEntry),
		userDir: userConfigDir,
	}

	global, found, err := c.load("global.txt")
	if err != nil {
		return nil, err
	}
	if scopedErr := validateHasGlobal(found); scopedErr != nil {
		return nil, scopedErr
	}
	c.global = global
	return c, nil
}

// Get returns the effective ConfigEntry for host: the host-specific entry
// (if any, from user dir shadowing embedded) merged over the mandatory
// global entry.
func (c *Collection) Get(host string) (ConfigEntry, bool) {
	host = normalizeHost(host)

	c.mu.RLock()
	if cached, ok := c.cache[host]; ok {
		c.mu.RUnlock()
		return cached, true
	}
	c.mu.RUnlock()

	site, found, err := c.load(host + ".txt")
	if err != nil || !found {
		return c.global, false
	}

	merged := Merge(site, c.global)
	c.mu.Lock()
	c.cache[host] = merged
	c.mu.Unlock()
	return merged, true
}

// GetWithFingerprint is Get, but when host has no matching entry it
// additionally consults the fingerprint table against rawHTML before
// falling back to global.txt alone (§4.2, SUPPLEMENTED FEATURES).
func (c *Collection) GetWithFingerprint(host string, rawHTML []byte) ConfigEntry {
	if entry, ok := c.Get(host); ok {
		return entry
	}
	if synthHost := matchFingerprint(rawHTML); synthHost != "" {
		if entry, ok := c.Get(synthHost); ok {
			return entry
		}
	}
	return c.global
}

// load reads name, preferring the user directory over the embedded
// defaults, and parses it. found is false when neither source has it.
func (c *Collection) load(name string) (ConfigEntry, bool, failure.ClassifiedError) {
	if c.userDir != "" {
		path := filepath.Join(c.userDir, name)
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			entry, parseErr := ParseConfigEntry(f)
			if parseErr != nil {
				return ConfigEntry{}, false, parseErr
			}
			return entry, true, nil
		}
	}

	data, err := embeddedDefaults.ReadFile("defaults/" + name)
	if err != nil {
		return ConfigEntry{}, false, nil
	}
	entry, parseErr := ParseConfigEntry(strings.NewReader(string(data)))
	if parseErr != nil {
		return ConfigEntry{}, false, parseErr
	}
	return entry, true, nil
}

// normalizeHost strips a leading "www." per §4.2's lookup key rule.
func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
