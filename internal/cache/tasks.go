package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/todohive/todo-api/internal/model"
)

// TaskCache хранит списки задач по владельцам. Кэш вспомогательный:
// любая ошибка Redis трактуется как промах, источником истины остается БД.
type TaskCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewTaskCache(client *redis.Client, logger *zap.Logger, ttl time.Duration) *TaskCache {
	return &TaskCache{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

func listKey(ownerID string) string {
	return "tasks:list:" + ownerID
}

// GetList возвращает (nil, false) при промахе или ошибке.
func (c *TaskCache) GetList(ctx context.Context, ownerID string) ([]model.Task, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.client.Get(ctx, listKey(ownerID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Debug("cache get failed", zap.Error(err))
		return nil, false
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		c.logger.Debug("cache unmarshal failed", zap.Error(err))
		return nil, false
	}
	return tasks, true
}

func (c *TaskCache) SetList(ctx context.Context, ownerID string, tasks []model.Task) {
	if c == nil {
		return
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listKey(ownerID), b, c.ttl).Err(); err != nil {
		c.logger.Debug("cache set failed", zap.Error(err))
	}
}

// InvalidateList сбрасывает кэш владельца, вызывается на каждой мутации.
func (c *TaskCache) InvalidateList(ctx context.Context, ownerID string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, listKey(ownerID)).Err(); err != nil {
		c.logger.Debug("cache invalidate failed", zap.Error(err))
	}
}
