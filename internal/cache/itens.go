package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const itemTTL = 30 * time.Minute

// Itens guarda payloads de anúncios do Mercado Livre por ID, para poupar a
// API nas leituras em massa repetidas.
type Itens struct {
	Client *redis.Client
}

func (c *Itens) Get(ctx context.Context, id string) ([]byte, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	val, err := c.Client.Get(ctx, "item:"+id).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *Itens) Set(ctx context.Context, id string, payload []byte) {
	if c == nil || c.Client == nil {
		return
	}
	c.Client.Set(ctx, "item:"+id, payload, itemTTL)
}
