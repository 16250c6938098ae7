// Package migration copies the relational catalog into the document and
// graph backends.
package migration

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"artmuseum/internal/document"
	"artmuseum/internal/log"
	"artmuseum/internal/metrics"
)

// DocumentWriter stores a batch of documents in the named collection and
// reports how many were written.
type DocumentWriter interface {
	InsertMany(ctx context.Context, collection string, docs []any) (int, error)
}

// MongoWriter writes into one database.
type MongoWriter struct {
	db *mongo.Database
}

func NewMongoWriter(db *mongo.Database) *MongoWriter {
	return &MongoWriter{db: db}
}

func (w *MongoWriter) InsertMany(ctx context.Context, collection string, docs []any) (int, error) {
	res, err := w.db.Collection(collection).InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

type documentStep struct {
	table      string
	collection string
	load       func(ctx context.Context, db *gorm.DB) ([]any, error)
}

func documentTable[M any, D any](table, collection string, toDoc func(M) D) documentStep {
	return documentStep{
		table:      table,
		collection: collection,
		load: func(ctx context.Context, db *gorm.DB) ([]any, error) {
			var rows []M
			if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
				return nil, err
			}
			docs := make([]any, len(rows))
			for i, row := range rows {
				docs[i] = toDoc(row)
			}
			return docs, nil
		},
	}
}

// documentSteps is the fixed copy order.
func documentSteps() []documentStep {
	return []documentStep{
		documentTable("artists", document.ArtistsCollection, document.FromArtist),
		documentTable("artworks", document.ArtworksCollection, document.FromArtwork),
		documentTable("collection_items", document.CollectionItemsCollection, document.FromCollectionItem),
		documentTable("collections", document.CollectionsCollection, document.FromCollection),
		documentTable("exhibition_artworks", document.ExhibitionArtworksCollection, document.FromExhibitionArtwork),
		documentTable("exhibitions", document.ExhibitionsCollection, document.FromExhibition),
		documentTable("locations", document.LocationsCollection, document.FromLocation),
		documentTable("media_files", document.MediaFilesCollection, document.FromMediaFile),
		documentTable("owners", document.OwnersCollection, document.FromOwner),
		documentTable("ownership", document.OwnershipsCollection, document.FromOwnership),
		documentTable("restorations", document.RestorationsCollection, document.FromRestoration),
		documentTable("transactions", document.TransactionsCollection, document.FromTransaction),
		documentTable("users", document.UsersCollection, document.FromUser),
	}
}

// DocumentCopier copies every relational table into its document
// collection. Inserts are unconditional, so running it twice stores every
// document twice.
type DocumentCopier struct {
	source  *gorm.DB
	writer  DocumentWriter
	logger  log.Logger
	metrics *metrics.Metrics
}

func NewDocumentCopier(source *gorm.DB, writer DocumentWriter, logger log.Logger, m *metrics.Metrics) *DocumentCopier {
	return &DocumentCopier{source: source, writer: writer, logger: logger.Component("migrate-mongo"), metrics: m}
}

// Run copies table by table and stops at the first failure. Tables already
// copied stay copied.
func (c *DocumentCopier) Run(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, step := range documentSteps() {
		docs, err := step.load(ctx, c.source)
		if err != nil {
			c.logger.Error().Err(err).Str("table", step.table).Msg("read failed")
			return counts, fmt.Errorf("read %s: %w", step.table, err)
		}
		if len(docs) == 0 {
			c.logger.Info().Str("table", step.table).Msg("empty table, skipped")
			continue
		}

		n, err := c.writer.InsertMany(ctx, step.collection, docs)
		if err != nil {
			c.logger.Error().Err(err).Str("collection", step.collection).Msg("insert failed")
			return counts, fmt.Errorf("insert %s: %w", step.collection, err)
		}
		counts[step.collection] = n
		c.metrics.AddCopied("mongo", step.collection, n)
		c.logger.Info().Str("table", step.table).Str("collection", step.collection).Int("count", n).Msg("copied")
	}
	return counts, nil
}
