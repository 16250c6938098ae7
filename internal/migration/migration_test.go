package migration

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"artmuseum/internal/db"
	"artmuseum/internal/document"
	"artmuseum/internal/log"
	"artmuseum/internal/metrics"
	"artmuseum/internal/model"
)

func ptr[T any](v T) *T { return &v }

// seededSource returns an in-memory catalog with a little of everything
// except restorations.
func seededSource(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(model.All()...))

	opened := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	seed := []any{
		&model.Artist{ID: 1, FullName: "Claude Monet", Nationality: ptr("French")},
		&model.Artist{ID: 2, FullName: "Berthe Morisot"},
		&model.Location{ID: 1, Name: "East Wing", Room: ptr("12")},
		&model.Owner{ID: 1, Name: "City of Paris"},
		&model.Owner{ID: 2, Name: "Private Collector"},
		&model.Exhibition{ID: 1, Name: "Light", StartDate: &opened, LocationID: ptr(int64(1))},
		&model.Collection{ID: 1, Name: "Impressionists", OwnerID: ptr(int64(1))},
		&model.Artwork{ID: 1, Title: "Water Lilies", PrimaryArtistID: ptr(int64(1)), CurrentLocationID: ptr(int64(1)), CurrentOwnerID: ptr(int64(1))},
		&model.Artwork{ID: 2, Title: "The Cradle", PrimaryArtistID: ptr(int64(2))},
		&model.CollectionItem{CollectionID: 1, ArtworkID: 1, DateAdded: &opened},
		&model.ExhibitionArtwork{ExhibitionID: 1, ArtworkID: 1, DisplayLabel: ptr("Room 12")},
		&model.MediaFile{ID: 1, ArtworkID: ptr(int64(1)), ArtistID: ptr(int64(1)), Title: ptr("Scan")},
		&model.Ownership{ID: 1, ArtworkID: 1, OwnerID: 2},
		&model.Ownership{ID: 2, ArtworkID: 1, OwnerID: 1},
		&model.Transaction{ID: 1, ArtworkID: 1, FromOwnerID: ptr(int64(2)), ToOwnerID: ptr(int64(1)),
			Price: decimal.NewNullDecimal(decimal.RequireFromString("1250000.50")), Currency: ptr("EUR")},
		&model.User{ID: 1, UserName: "ada", Email: "Ada@Museum.org", PasswordHash: "hash", Roles: "Admin", CreatedAt: opened, UpdatedAt: opened},
	}
	for _, rec := range seed {
		require.NoError(t, gdb.Create(rec).Error)
	}
	return gdb
}

// memWriter keeps every inserted document per collection.
type memWriter struct {
	docs   map[string][]any
	failOn string
}

func (w *memWriter) InsertMany(_ context.Context, collection string, docs []any) (int, error) {
	if collection == w.failOn {
		return 0, errors.New("write refused")
	}
	w.docs[collection] = append(w.docs[collection], docs...)
	return len(docs), nil
}

func TestDocumentCopyTwiceDoublesDocuments(t *testing.T) {
	src := seededSource(t)
	w := &memWriter{docs: map[string][]any{}}
	m := metrics.New()
	copier := NewDocumentCopier(src, w, log.Nop(), m)

	counts, err := copier.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, counts[document.ArtistsCollection])
	assert.Equal(t, 1, counts[document.UsersCollection])
	_, copied := counts[document.RestorationsCollection]
	assert.False(t, copied, "empty tables are skipped")

	_, err = copier.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, w.docs[document.ArtistsCollection], 4)
	assert.Len(t, w.docs[document.TransactionsCollection], 2)
	assert.NotContains(t, w.docs, document.RestorationsCollection)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.CopiedRows.WithLabelValues("mongo", document.ArtistsCollection)))

	artist := w.docs[document.ArtistsCollection][0].(document.Artist)
	require.NotNil(t, artist.ArtistID)
	assert.Equal(t, int64(1), *artist.ArtistID)

	user := w.docs[document.UsersCollection][0].(document.User)
	assert.Equal(t, "ada@museum.org", user.Email)
}

func TestDocumentCopyStopsAtFirstFailure(t *testing.T) {
	w := &memWriter{docs: map[string][]any{}, failOn: document.ArtworksCollection}
	copier := NewDocumentCopier(seededSource(t), w, log.Nop(), nil)

	_, err := copier.Run(context.Background())

	require.Error(t, err)
	assert.Len(t, w.docs[document.ArtistsCollection], 2)
	assert.NotContains(t, w.docs, document.CollectionsCollection)
}

func TestMongoWriter(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert many", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		n, err := NewMongoWriter(mt.DB).InsertMany(context.Background(), document.OwnersCollection,
			[]any{document.Owner{OwnerID: 1, Name: "a"}, document.Owner{OwnerID: 2, Name: "b"}})
		require.NoError(mt, err)
		assert.Equal(mt, 2, n)
	})

	mt.Run("server error", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 0}, {Key: "errmsg", Value: "not primary"}, {Key: "code", Value: 10107}})
		_, err := NewMongoWriter(mt.DB).InsertMany(context.Background(), document.OwnersCollection, []any{document.Owner{OwnerID: 1}})
		assert.Error(mt, err)
	})
}

var mergeNode = regexp.MustCompile(`MERGE \(n:(\w+) \{(\w+): row\.(\w+)\}\) SET n \+= row`)

// mergeGraph interprets the copier's MERGE statements against in-memory
// node and relationship sets.
type mergeGraph struct {
	nodes       map[string]map[any]map[string]any
	rels        map[string]struct{}
	constraints int
	statements  []string
}

func newMergeGraph() *mergeGraph {
	return &mergeGraph{nodes: map[string]map[any]map[string]any{}, rels: map[string]struct{}{}}
}

func (g *mergeGraph) Run(_ context.Context, cypher string, params map[string]any) (*db.GraphResult, error) {
	g.statements = append(g.statements, cypher)
	if strings.HasPrefix(cypher, "CREATE CONSTRAINT") {
		g.constraints++
		return &db.GraphResult{}, nil
	}
	rows, _ := params["rows"].([]any)
	if m := mergeNode.FindStringSubmatch(cypher); m != nil {
		label, key := m[1], m[2]
		if g.nodes[label] == nil {
			g.nodes[label] = map[any]map[string]any{}
		}
		created := 0
		for _, r := range rows {
			props := r.(map[string]any)
			node, ok := g.nodes[label][props[key]]
			if !ok {
				node = map[string]any{}
				g.nodes[label][props[key]] = node
				created++
			}
			for k, v := range props {
				node[k] = v
			}
		}
		return &db.GraphResult{NodesCreated: created}, nil
	}
	for _, r := range rows {
		g.rels[relKey(cypher, r.(map[string]any))] = struct{}{}
	}
	return &db.GraphResult{}, nil
}

func relKey(cypher string, props map[string]any) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		if strings.HasSuffix(k, "Id") {
			keys = append(keys, fmt.Sprintf("%s=%v", k, props[k]))
		}
	}
	sort.Strings(keys)
	merge := cypher[strings.Index(cypher, "MERGE"):]
	if i := strings.Index(merge, "\n"); i > 0 {
		merge = merge[:i]
	}
	return merge + " " + strings.Join(keys, ",")
}

func (g *mergeGraph) nodeCount() int {
	n := 0
	for _, byKey := range g.nodes {
		n += len(byKey)
	}
	return n
}

func TestGraphCopyIsRerunnable(t *testing.T) {
	graph := newMergeGraph()
	copier := NewGraphCopier(seededSource(t), graph, log.Nop(), metrics.New())

	counts, err := copier.Run(context.Background(), StepAll)
	require.NoError(t, err)
	nodes, rels := graph.nodeCount(), len(graph.rels)
	assert.Equal(t, 12, nodes)
	assert.Equal(t, 2, counts["Artwork"])
	assert.Equal(t, 2, counts["OWNED_BY"])
	assert.Equal(t, 1, counts["HELD_AT"])
	assert.Equal(t, 2, counts["CREATED"])

	_, err = copier.Run(context.Background(), StepAll)
	require.NoError(t, err)
	assert.Equal(t, nodes, graph.nodeCount())
	assert.Equal(t, rels, len(graph.rels))
	assert.Equal(t, 2*len(constraints), graph.constraints)
}

func TestGraphNodeProperties(t *testing.T) {
	graph := newMergeGraph()
	_, err := NewGraphCopier(seededSource(t), graph, log.Nop(), nil).Run(context.Background(), StepNodes)
	require.NoError(t, err)

	user := graph.nodes["User"][int64(1)]
	require.NotNil(t, user)
	assert.Equal(t, "ada@museum.org", user["email"])
	assert.Equal(t, "hash", user["passwordHash"])

	collection := graph.nodes["Collection"][int64(1)]
	assert.Equal(t, int64(1), collection["ownerId"])

	txn := graph.nodes["Transaction"][int64(1)]
	assert.InDelta(t, 1250000.50, txn["price"], 0.001)
	assert.Empty(t, graph.rels)
}

func TestGraphRelationshipsOnly(t *testing.T) {
	graph := newMergeGraph()
	_, err := NewGraphCopier(seededSource(t), graph, log.Nop(), nil).Run(context.Background(), StepRelationships)
	require.NoError(t, err)

	assert.Zero(t, graph.constraints)
	assert.Zero(t, graph.nodeCount())
	assert.NotEmpty(t, graph.rels)
}

func TestParseStep(t *testing.T) {
	for in, want := range map[string]Step{"nodes": StepNodes, " Relationships ": StepRelationships, "all": StepAll, "": StepAll} {
		got, err := ParseStep(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseStep("edges")
	assert.Error(t, err)
}
