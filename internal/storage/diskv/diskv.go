// Package diskv implements storage.Storage on a diskv key-value tree of
// JSON documents, one directory per record kind.
package diskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"github.com/chris-regnier/kindctl/internal/prompt"
	"github.com/chris-regnier/kindctl/internal/storage"
)

// Record kinds double as top-level directories.
const (
	kindPrompt     = "prompts"
	kindCompletion = "completions"
	kindSkip       = "skips"
	kindSelection  = "selections"
	kindMeta       = "meta"

	keyProgress      = kindMeta + "/progress"
	keySeqCompletion = kindMeta + "/seq-completion"
	keySeqSkip       = kindMeta + "/seq-skip"
)

// Store implements storage.Storage with diskv.
type Store struct {
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
}

// New opens (creating if needed) a diskv store under dataDir/kv.
func New(dataDir string) (*Store, error) {
	basePath := filepath.Join(dataDir, "kv")
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

// keys are "<kind>/<name>"
func keyToPathTransform(key string) *diskv.PathKey {
	kind, name, ok := strings.Cut(key, "/")
	if !ok {
		return &diskv.PathKey{FileName: key}
	}
	return &diskv.PathKey{Path: []string{kind}, FileName: name}
}

func pathToKeyTransform(pk *diskv.PathKey) string {
	if len(pk.Path) == 0 {
		return pk.FileName
	}
	return strings.Join(pk.Path, "/") + "/" + pk.FileName
}

// Close is a no-op; diskv holds no open handles.
func (s *Store) Close() error {
	return nil
}

// WatchPaths returns the base directory of the key-value tree.
func (s *Store) WatchPaths() []string {
	return []string{s.basePath}
}

func (s *Store) readJSON(key string, v any) error {
	data, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("%w: reading %s: %v", storage.ErrStorage, key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", storage.ErrStorage, key, err)
	}
	return nil
}

func (s *Store) writeJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", storage.ErrStorage, key, err)
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", storage.ErrStorage, key, err)
	}
	return nil
}

func (s *Store) erase(key string) error {
	if err := s.d.Erase(key); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("%w: erasing %s: %v", storage.ErrStorage, key, err)
	}
	return nil
}

// keys returns every key of a kind, sorted.
func (s *Store) keys(ctx context.Context, kind string) []string {
	var out []string
	for key := range s.d.KeysPrefix(kind+"/", ctx.Done()) {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// nextID increments and persists a sequence. Callers hold s.mu.
func (s *Store) nextID(key string) (int64, error) {
	var n int64
	if data, err := s.d.Read(key); err == nil {
		n, err = strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: corrupt sequence %s: %v", storage.ErrStorage, key, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("%w: reading %s: %v", storage.ErrStorage, key, err)
	}
	n++
	if err := s.d.Write(key, []byte(strconv.FormatInt(n, 10))); err != nil {
		return 0, fmt.Errorf("%w: writing %s: %v", storage.ErrStorage, key, err)
	}
	return n, nil
}

func promptKey(id int) string {
	return fmt.Sprintf("%s/%06d", kindPrompt, id)
}

// ListPrompts returns the catalog ordered by ID.
func (s *Store) ListPrompts(ctx context.Context) ([]prompt.Prompt, error) {
	ps := []prompt.Prompt{}
	for _, key := range s.keys(ctx, kindPrompt) {
		var p prompt.Prompt
		if err := s.readJSON(key, &p); err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, ctx.Err()
}

// GetPrompt retrieves a prompt by ID.
func (s *Store) GetPrompt(ctx context.Context, id int) (prompt.Prompt, error) {
	var p prompt.Prompt
	if err := s.readJSON(promptKey(id), &p); err != nil {
		return prompt.Prompt{}, err
	}
	return p, nil
}

// InsertPrompts adds prompts, skipping IDs already in the catalog.
func (s *Store) InsertPrompts(ctx context.Context, ps []prompt.Prompt) (int, error) {
	for _, p := range ps {
		if err := prompt.Validate(p); err != nil {
			return 0, fmt.Errorf("%w: %v", storage.ErrValidation, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, p := range ps {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		key := promptKey(p.ID)
		if s.d.Has(key) {
			continue
		}
		if err := s.writeJSON(key, prompt.Normalize(p)); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// CountPrompts returns the catalog size.
func (s *Store) CountPrompts(ctx context.Context) (int, error) {
	return len(s.keys(ctx, kindPrompt)), ctx.Err()
}
