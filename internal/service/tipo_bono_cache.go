package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/victorolivaresat/bono-go/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const tipoBonoCacheTTL = 5 * time.Minute

// tipoBonoCache is a read-through Redis cache for TipoBono lookups on the
// redemption path. It degrades to a no-op when Redis is unavailable: a miss
// just means hitting Postgres, which is always correct.
type tipoBonoCache struct{ rdb *redis.Client }

func NewTipoBonoCache(rdb *redis.Client) *tipoBonoCache { return &tipoBonoCache{rdb: rdb} }

func tipoBonoCacheKey(id uuid.UUID) string { return "tipo_bono:" + id.String() }

func (c *tipoBonoCache) Get(ctx context.Context, id uuid.UUID) *model.TipoBono {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := c.rdb.Get(ctx, tipoBonoCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var tipo model.TipoBono
	if err := json.Unmarshal(raw, &tipo); err != nil {
		return nil
	}
	return &tipo
}

func (c *tipoBonoCache) Set(ctx context.Context, tipo *model.TipoBono) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(tipo)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, tipoBonoCacheKey(tipo.ID), raw, tipoBonoCacheTTL)
}

func (c *tipoBonoCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, tipoBonoCacheKey(id))
}
