package availability

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tourbook/models"
	"tourbook/utils"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// CalendarCache stores generated calendars by content key. A key changes
// whenever any generation input changes, so entries never need invalidation.
type CalendarCache interface {
	Get(ctx context.Context, key string) (Calendar, bool)
	Set(ctx context.Context, key string, cal Calendar)
}

// CacheKey derives the content key for a provider's generated calendar.
func CacheKey(providerID string, today time.Time, pattern models.WeeklyPattern, horizonDays int) string {
	p := pattern.Normalized()
	h := sha256.New()
	h.Write([]byte(strings.Join(p.OpenDays, ",")))
	h.Write([]byte{'|'})
	h.Write([]byte(strings.Join(p.DailySlots, ",")))
	digest := hex.EncodeToString(h.Sum(nil))[:16]
	return fmt.Sprintf("%s%s:%s:%s:%d", utils.CalendarCachePrefix, providerID, today.Format(models.DateLayout), digest, horizonDays)
}

// RedisCalendarCache keeps calendars as JSON values with a TTL.
type RedisCalendarCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewRedisCalendarCache(client *redis.Client, logger *zap.Logger) *RedisCalendarCache {
	return &RedisCalendarCache{Client: client, TTL: utils.CalendarCacheTTL, Logger: logger}
}

func (c *RedisCalendarCache) Get(ctx context.Context, key string) (Calendar, bool) {
	raw, err := c.Client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.Logger.Warn("Calendar cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var cal Calendar
	if err := json.Unmarshal(raw, &cal); err != nil {
		c.Logger.Warn("Calendar cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return cal, true
}

func (c *RedisCalendarCache) Set(ctx context.Context, key string, cal Calendar) {
	raw, err := json.Marshal(cal)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		c.Logger.Warn("Calendar cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// LRUCalendarCache keeps calendars in process, bounded by entry count.
type LRUCalendarCache struct {
	cache *lru.Cache[string, Calendar]
}

func NewLRUCalendarCache(size int) (*LRUCalendarCache, error) {
	if size <= 0 {
		size = 512
	}
	cache, err := lru.New[string, Calendar](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar cache: %w", err)
	}
	return &LRUCalendarCache{cache: cache}, nil
}

func (c *LRUCalendarCache) Get(_ context.Context, key string) (Calendar, bool) {
	cal, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	return cal.Clone(), true
}

func (c *LRUCalendarCache) Set(_ context.Context, key string, cal Calendar) {
	c.cache.Add(key, cal.Clone())
}

// Len reports the number of cached calendars.
func (c *LRUCalendarCache) Len() int {
	return c.cache.Len()
}
