package transitionlog

import (
	"errors"
	"fmt"

	"github.com/spec-kit/ticket-status/internal/config"
	"github.com/spec-kit/ticket-status/internal/persistence"
)

// Backends carries the connections the database sinks write through.
type Backends struct {
	Postgres *persistence.Postgres
	Redis    *persistence.Redis
}

// BuildSink assembles the sinks named in cfg. A single sink is returned as is;
// several are wrapped in a MultiSink in the configured order.
func BuildSink(cfg config.TransitionConfig, backends Backends) (Sink, error) {
	sinks := make([]Sink, 0, len(cfg.Sinks))
	for _, name := range cfg.Sinks {
		switch name {
		case config.SinkFile:
			if cfg.LogPath == "" {
				return nil, errors.New("file sink requires TRANSITION_LOG_PATH")
			}
			sinks = append(sinks, NewFileSink(cfg.LogPath))
		case config.SinkRedis:
			if backends.Redis == nil || backends.Redis.Client == nil {
				return nil, errors.New("redis sink requires a redis client")
			}
			sinks = append(sinks, NewRedisSink(backends.Redis.Client, cfg.RedisKey))
		case config.SinkPostgres:
			pool := backends.Postgres.PoolHandle()
			if pool == nil {
				return nil, errors.New("postgres sink requires POSTGRES_DSN")
			}
			sinks = append(sinks, NewPostgresSink(pool))
		default:
			return nil, fmt.Errorf("unknown transition sink %q", name)
		}
	}

	switch len(sinks) {
	case 0:
		return nil, errors.New("no transition sinks configured")
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}
