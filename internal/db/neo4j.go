package db

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphResult is the eager outcome of one Cypher statement.
type GraphResult struct {
	Records      []*neo4j.Record
	NodesCreated int
	NodesDeleted int
}

// GraphRunner executes Cypher statements. Repositories and the copier depend
// on this instead of the driver so they can run against a fake in tests.
type GraphRunner interface {
	Run(ctx context.Context, cypher string, params map[string]any) (*GraphResult, error)
}

// Graph runs statements through a pooled driver against one database.
type Graph struct {
	driver   neo4j.DriverWithContext
	database string
}

var _ GraphRunner = (*Graph)(nil)

// NewNeo4j creates a driver and checks connectivity.
func NewNeo4j(ctx context.Context, uri, user, password, database string) (*Graph, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(context.Background())
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	return &Graph{driver: driver, database: database}, nil
}

// Run executes cypher with params and collects every record.
func (g *Graph) Run(ctx context.Context, cypher string, params map[string]any) (*GraphResult, error) {
	res, err := neo4j.ExecuteQuery(ctx, g.driver, cypher, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(g.database))
	if err != nil {
		return nil, err
	}
	counters := res.Summary.Counters()
	return &GraphResult{
		Records:      res.Records,
		NodesCreated: counters.NodesCreated(),
		NodesDeleted: counters.NodesDeleted(),
	}, nil
}

// Close releases the driver's connection pool.
func (g *Graph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}
