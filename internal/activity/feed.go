package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/miniblog/internal/config"
)

const feedKey = "activity:recent"

// Entry is one row of the recent-activity feed.
type Entry struct {
	Action string    `json:"action"`
	PostID uint      `json:"post_id"`
	At     time.Time `json:"at"`
}

// Feed keeps the most recent post/comment mutations in a capped Redis list.
// The durable record lives in the activity_logs table; this is the cheap
// read path for the dashboard-style endpoint.
type Feed struct {
	client *redis.Client
	max    int64
}

func NewFeed(cfg *config.Config) (*Feed, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &Feed{client: c, max: int64(cfg.ActivityMax)}, nil
}

func (f *Feed) Close() error { return f.client.Close() }

func (f *Feed) Record(ctx context.Context, e Entry) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	pipe := f.client.TxPipeline()
	pipe.LPush(ctx, feedKey, b)
	pipe.LTrim(ctx, feedKey, 0, f.max-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (f *Feed) Recent(ctx context.Context) ([]Entry, error) {
	vals, err := f.client.LRange(ctx, feedKey, 0, f.max-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(vals))
	for _, v := range vals {
		var e Entry
		if err := json.Unmarshal([]byte(v), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
