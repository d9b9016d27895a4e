package rendering

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rmitchellscott/inkframe/internal/cache"
	"github.com/rmitchellscott/inkframe/internal/logging"
)

// ResolveMeta describes what a resolution cost: which upstream source was
// consulted and how many data units (sensor states, calendar entries) were
// fetched to build the markup.
type ResolveMeta struct {
	SourceKey    string
	FetchedUnits int
}

// ContentResolver turns a template reference into renderable markup. The
// substitution engine itself lives outside this core; anything implementing
// this interface can be plugged in.
type ContentResolver interface {
	Resolve(ctx context.Context, ref string) (string, ResolveMeta, error)
}

// FileResolver serves markup from template files on disk, keyed by a
// sanitized template name. It is the standalone default; deployments with
// an upstream substitution engine replace it.
type FileResolver struct {
	Dir string
}

// Resolve reads <dir>/<ref>.html. A missing or empty file is
// KindContentNotAvailable.
func (r *FileResolver) Resolve(_ context.Context, ref string) (string, ResolveMeta, error) {
	name := filepath.Base(ref)
	if name != ref || name == "." || name == string(filepath.Separator) {
		return "", ResolveMeta{}, NewError(KindInvalidParameter, fmt.Sprintf("invalid template name %q", ref))
	}

	path := filepath.Join(r.Dir, name+".html")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ResolveMeta{}, WrapError(KindContentNotAvailable, fmt.Sprintf("template %q not found", ref), err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", ResolveMeta{}, NewError(KindContentNotAvailable, fmt.Sprintf("template %q is empty", ref))
	}

	return string(data), ResolveMeta{SourceKey: path}, nil
}

// CachedResolver fronts another resolver with the rendered-content cache so
// repeated image requests skip the expensive resolution work.
type CachedResolver struct {
	Inner ContentResolver
	Store *cache.Store
	TTL   time.Duration
}

// Resolve checks the cache first. On a miss, the inner resolver runs and a
// successful result is stored with the configured TTL. Resolution failures
// are never cached.
func (r *CachedResolver) Resolve(ctx context.Context, ref string) (string, ResolveMeta, error) {
	if content, ok := r.Store.Get(ref); ok {
		logging.DebugWithComponent(logging.ComponentResolver, "Cache hit", "template", ref)
		return content, ResolveMeta{SourceKey: ref}, nil
	}

	content, meta, err := r.Inner.Resolve(ctx, ref)
	if err != nil {
		return "", ResolveMeta{}, err
	}

	r.Store.Set(ref, content, r.TTL, cache.Metadata{
		SourceKey:    meta.SourceKey,
		FetchedUnits: meta.FetchedUnits,
	})
	logging.DebugWithComponent(logging.ComponentResolver, "Cache fill",
		"template", ref, "ttl", r.TTL, "fetched_units", meta.FetchedUnits)

	return content, meta, nil
}
