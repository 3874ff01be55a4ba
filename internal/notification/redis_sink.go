package notification

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
)

const channel = "appointments.events"

// RedisSink publica eventos no pub/sub do redis; consumidores (e-mail,
// WhatsApp) ficam fora deste serviço.
type RedisSink struct {
	rdb *redis.Client
}

func NewRedisSink(addr, password string) *RedisSink {
	return &RedisSink{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (s *RedisSink) Deliver(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, channel, payload).Err()
}
