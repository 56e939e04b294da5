package remote

import (
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/validate"
)

type RedisConfig struct {
	Host string
	Port int
}

func NewRedisClient(conf RedisConfig) Client {
	return &redisClient{
		Client: redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf("%s:%d", conf.Host, conf.Port)}),
	}
}

type redisClient struct {
	*redis.Client
}

func (r *redisClient) Ready() bool {
	return r.Ping().Err() == nil
}

// Push stores the latest report for the dataset under a well-known key.
// Reports are overwritten per run: the sink records current state, not
// history.
func (r *redisClient) Push(dataset string, report *validate.Report) error {
	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.Set(fmt.Sprintf("report:%s", dataset), b, 0).Err()
}
