package shell

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/chris-regnier/kindctl/internal/kindness"
)

const cacheFileName = ".prompt-cache"

// PromptCache holds the last computed status for the shell prompt.
type PromptCache struct {
	Date          string    `json:"date"`
	Done          bool      `json:"done"`
	Streak        int       `json:"streak"`
	BestStreak    int       `json:"best_streak"`
	NextMilestone int       `json:"next_milestone"`
	Backend       string    `json:"backend"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromSummary builds a cache record from a fresh summary.
func FromSummary(s kindness.Summary, backend string, now time.Time) *PromptCache {
	return &PromptCache{
		Date:          s.Date,
		Done:          s.DoneToday,
		Streak:        s.ActiveStreak,
		BestStreak:    s.Progress.BestStreak,
		NextMilestone: s.NextMilestone,
		Backend:       backend,
		UpdatedAt:     now,
	}
}

// CachePath returns the full path to the prompt cache file.
func CachePath(dataDir string) string {
	return filepath.Join(dataDir, cacheFileName)
}

// ReadCache reads the prompt cache from disk. Returns nil if the cache
// does not exist or cannot be parsed.
func ReadCache(dataDir string) *PromptCache {
	data, err := os.ReadFile(CachePath(dataDir))
	if err != nil {
		return nil
	}
	var c PromptCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}
	return &c
}

// WriteCache writes the prompt cache to disk.
func WriteCache(dataDir string, c *PromptCache) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(CachePath(dataDir), data, 0o600)
}

// IsFresh reports whether the cache can still be shown: it was written for
// today and within ttl of now.
func (c *PromptCache) IsFresh(ttl time.Duration, today string, now time.Time) bool {
	if c == nil || c.Date != today {
		return false
	}
	return now.Sub(c.UpdatedAt) <= ttl
}

// InvalidateCache removes the prompt cache file.
func InvalidateCache(dataDir string) error {
	if err := os.Remove(CachePath(dataDir)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
