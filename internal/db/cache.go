package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	model "github.com/glkeru/plagadmin/internal/models"
	redis "github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
}

const summaryKey = "dashboard:summary"

func NewCacheService() (serv *CacheService, err error) {

	// config
	addr := os.Getenv("ADMIN_CACHE_URL")
	if addr == "" {
		return nil, fmt.Errorf("env ADMIN_CACHE_URL is not set")
	}
	user := os.Getenv("ADMIN_CACHE_USER")
	if user == "" {
		return nil, fmt.Errorf("env ADMIN_CACHE_USER is not set")
	}
	pwd := os.Getenv("ADMIN_CACHE_PWD")
	if pwd == "" {
		return nil, fmt.Errorf("env ADMIN_CACHE_PWD is not set")
	}
	// redis
	db := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    pwd,
		Username:    user,
		DB:          0,
		MaxRetries:  5,
		DialTimeout: 10 * time.Second,
	})
	err = db.Ping(context.Background()).Err()
	if err != nil {
		return nil, err
	}

	return &CacheService{db}, nil
}

func (c *CacheService) GetSummary(ctx context.Context) (summary model.DashboardSummary, err error) {
	val, err := c.client.Get(ctx, summaryKey).Result()
	if err == redis.Nil {
		return model.DashboardSummary{}, fmt.Errorf("not found")
	} else if err != nil {
		return model.DashboardSummary{}, err
	}

	err = json.Unmarshal([]byte(val), &summary)
	if err != nil {
		return model.DashboardSummary{}, err
	}
	return summary, nil
}

func (c *CacheService) SetSummary(ctx context.Context, summary model.DashboardSummary) (err error) {
	val, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	err = c.client.Set(ctx, summaryKey, val, 5*time.Minute).Err()
	if err != nil {
		return err
	}
	return nil
}

func (c *CacheService) InvalidateSummary(ctx context.Context) error {
	err := c.client.Del(ctx, summaryKey).Err()
	if err != nil {
		return err
	}
	return nil
}
