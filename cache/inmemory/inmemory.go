package inmemory

import (
	"time"

	"goshortly/cache/cacher"

	gocache "github.com/patrickmn/go-cache"
)

// New returns an in-memory cache for default usage.
func New(defaultExp, defaultClearInterval time.Duration) cacher.Engine {
	return &inMemory{
		engine: gocache.New(defaultExp, defaultClearInterval),
	}
}

type inMemory struct {
	engine *gocache.Cache
}

func (i *inMemory) Get(code string) (*cacher.Entry, bool) {
	data, found := i.engine.Get(code)
	if !found {
		return nil, false
	}
	entry, ok := data.(cacher.Entry)
	if !ok {
		return nil, false
	}
	return &entry, true
}

func (i *inMemory) Set(code string, entry *cacher.Entry, expiration time.Duration) {
	i.engine.Set(code, *entry, expiration)
}

func (i *inMemory) Delete(code string) {
	i.engine.Delete(code)
}
