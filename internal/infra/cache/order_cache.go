package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// 全ユーザー共通の世代（チケット更新で上がる）
const globalGenKey = "orders:gen"

// ユーザーごとの注文一覧キャッシュ（cache-aside）
// 値のキーに世代を含める。Invalidateは世代を上げるだけで、古い世代の値はTTLで消える
type OrderListCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewOrderListCache(rdb redis.Cmdable, ttl time.Duration) *OrderListCache {
	return &OrderListCache{rdb: rdb, ttl: ttl}
}

func userGenKey(userID string) string {
	return fmt.Sprintf("orders:user:%s:gen", userID)
}

func orderListKey(userID, gen string) string {
	return fmt.Sprintf("orders:user:%s:list:%s", userID, gen)
}

// "全体:ユーザー"。未設定は0
func (c *OrderListCache) generation(ctx context.Context, userID string) (string, error) {
	vals, err := c.rdb.MGet(ctx, globalGenKey, userGenKey(userID)).Result()
	if err != nil {
		return "", err
	}
	parts := [2]string{"0", "0"}
	for i, v := range vals {
		if s, ok := v.(string); ok && s != "" {
			parts[i] = s
		}
	}
	return parts[0] + ":" + parts[1], nil
}

// ヒットしなくても世代は返す。Setにはその世代を渡す
func (c *OrderListCache) Get(ctx context.Context, userID string) ([]model.Order, string, bool, error) {
	gen, err := c.generation(ctx, userID)
	if err != nil {
		return nil, "", false, err
	}

	raw, err := c.rdb.Get(ctx, orderListKey(userID, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, "", false, err
	}

	var orders []model.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		// 壊れた値は捨てる
		_ = c.rdb.Del(ctx, orderListKey(userID, gen)).Err()
		return nil, gen, false, nil
	}
	return orders, gen, true, nil
}

func (c *OrderListCache) Set(ctx context.Context, userID, gen string, orders []model.Order) error {
	if gen == "" {
		return nil
	}
	b, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, orderListKey(userID, gen), b, c.ttl).Err()
}

// 注文・支払いの後
func (c *OrderListCache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Incr(ctx, userGenKey(userID)).Err()
}

// 注文一覧はチケット情報を含むので、チケット更新で全ユーザー分を無効にする
func (c *OrderListCache) InvalidateAll(ctx context.Context) error {
	return c.rdb.Incr(ctx, globalGenKey).Err()
}
