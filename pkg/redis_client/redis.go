package redis_client

import (
	"context"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const queueConnectionTag = "transitrouter"

type Options struct {
	Address  string
	Password string
	Database int
}

func Connect(options Options) error {
	if options.Password == "" {
		Client = redis.NewClient(&redis.Options{
			Addr: options.Address,
			DB:   options.Database,
		})
	} else {
		Client = redis.NewClient(&redis.Options{
			Addr:     options.Address,
			Password: options.Password,
			DB:       options.Database,
		})
	}

	statusCmd := Client.Ping(context.Background())
	err := statusCmd.Err()
	if err != nil {
		return err
	}

	QueueConnection, err = rmq.OpenConnectionWithRedisClient(queueConnectionTag, Client, nil)
	if err != nil {
		return err
	}

	return nil
}
