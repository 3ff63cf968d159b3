package workspace

import (
	"sync"

	"insightiq/cache"
)

// Registry keeps one Workspace per session. Idle sessions expire after the cache TTL.
type Registry struct {
	mu      sync.Mutex
	cache   *cache.Cache
	factory func(id string) *Workspace
	onCount func(n int)
}

// NewRegistry builds a registry. onCount, when set, is called with the number of live
// sessions after every change.
func NewRegistry(c *cache.Cache, factory func(id string) *Workspace, onCount func(n int)) *Registry {
	r := &Registry{cache: c, factory: factory, onCount: onCount}
	c.OnEvicted(func(string, interface{}) { r.report() })
	return r
}

// Get returns the workspace for id, creating it on first use.
func (r *Registry) Get(id string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.cache.Touch(id); ok {
		return v.(*Workspace)
	}
	w := r.factory(id)
	r.cache.SetDefault(id, w)
	r.report()
	return w
}

func (r *Registry) Drop(id string) {
	r.cache.Delete(id)
}

func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

func (r *Registry) report() {
	if r.onCount != nil {
		r.onCount(r.cache.ItemCount())
	}
}
