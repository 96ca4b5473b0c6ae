package session

import (
	"sync"

	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/services/stores"
)

// Config carries the collaborators every coordinator is built with.
type Config struct {
	Inference    stores.Inference
	Primary      stores.RedisClient
	Shadow       stores.KeyValue
	SystemPrompt string
}

// Registry maps session ids to their one coordinator instance, creating it
// on first sight. Instances live for the process lifetime; history itself
// has no eviction, so neither do its owners.
type Registry struct {
	mu    sync.Mutex
	cfg   Config
	insts map[string]*Coordinator
}

func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:   cfg,
		insts: make(map[string]*Coordinator),
	}
}

// Resolve returns the stable coordinator for id.
func (g *Registry) Resolve(id string) *Coordinator {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.insts[id]; ok {
		return c
	}
	c := &Coordinator{
		id:     id,
		cs:     stores.NewConversation(id, g.cfg.Primary, g.cfg.Shadow),
		ai:     g.cfg.Inference,
		system: g.cfg.SystemPrompt,
	}
	g.insts[id] = c
	logger().Debugw("new coordinator", "id", id, "count", len(g.insts))
	return c
}
