package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artmuseum/internal/config"
	"artmuseum/internal/log"
)

func TestOpenBackendsReleasesEarlierConnectionsOnFailure(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{
		Backends:    config.BackendMongo,
		IDAllocator: config.AllocatorRedis,
		RedisAddr:   mr.Addr(),
		MongoURI:    "not-a-mongo-uri",
	}

	b, err := openBackends(context.Background(), cfg, log.Nop())

	require.Error(t, err)
	assert.Nil(t, b)
	assert.Contains(t, err.Error(), "mongo init")
	assert.Eventually(t, func() bool { return mr.CurrentConnectionCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestBackendsCloseRunsInReverseOrder(t *testing.T) {
	var order []string
	b := &backends{closers: []func(){
		func() { order = append(order, "redis") },
		func() { order = append(order, "mysql") },
		func() { order = append(order, "neo4j") },
	}}

	b.Close()
	b.Close()

	assert.Equal(t, []string{"neo4j", "mysql", "redis"}, order)
}

func TestSwaggerURL(t *testing.T) {
	tests := map[string]string{
		"":                       "http://localhost:5000/swagger/index.html",
		"museum.example:8080":    "http://museum.example:8080/swagger/index.html",
		"https://museum.example": "https://museum.example/swagger/index.html",
	}
	for host, want := range tests {
		assert.Equal(t, want, swaggerURL(host), host)
	}
}
