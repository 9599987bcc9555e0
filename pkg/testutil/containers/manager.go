//go:build integration

// Package containers starts throwaway Redis and MongoDB instances for
// integration tests. Containers are shared across suites in a test binary and
// reaped by Ryuk when the process exits.
package containers

import "sync"

// Manager owns the lazily started containers.
type Manager struct {
	redisOnce sync.Once
	redis     *RedisContainer
	redisErr  error

	mongoOnce sync.Once
	mongo     *MongoContainer
	mongoErr  error
}

var (
	manager     *Manager
	managerOnce sync.Once
)

// GetManager returns the process-wide container manager.
func GetManager() *Manager {
	managerOnce.Do(func() {
		manager = &Manager{}
	})
	return manager
}
