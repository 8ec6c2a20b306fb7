// Package redis connects to Redis with retries and exposes a readiness
// check. The resulting client backs session.RedisStore.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := session.NewRedisStore[User](client, cfg.SessionPrefix)
package redis
