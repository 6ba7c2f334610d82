package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/XTHN9RF/Foodify-API/models"
	"github.com/redis/go-redis/v9"
)

const categoriesKey = "foodify:categories"

type Redis struct {
	client *redis.Client
}

// ConnectRedis opens a client and pings it once so misconfiguration fails at startup.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Println("✅ Redis connection opened")
	return client, nil
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Categories(ctx context.Context) ([]models.Category, bool) {
	data, err := r.client.Get(ctx, categoriesKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("⚠️ redis get %s: %v", categoriesKey, err)
		return nil, false
	}
	var categories []models.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, false
	}
	return categories, true
}

func (r *Redis) SetCategories(ctx context.Context, categories []models.Category) {
	data, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, categoriesKey, data, CategoriesTTL).Err(); err != nil {
		log.Printf("⚠️ redis set %s: %v", categoriesKey, err)
	}
}

func (r *Redis) Invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, categoriesKey).Err(); err != nil {
		log.Printf("⚠️ redis del %s: %v", categoriesKey, err)
	}
}
