package migration

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"artmuseum/internal/db"
	"artmuseum/internal/log"
	"artmuseum/internal/metrics"
	"artmuseum/internal/model"
)

// Step selects which graph phases run.
type Step string

const (
	StepNodes         Step = "nodes"
	StepRelationships Step = "relationships"
	StepAll           Step = "all"
)

// ParseStep accepts nodes, relationships or all.
func ParseStep(s string) (Step, error) {
	switch Step(strings.ToLower(strings.TrimSpace(s))) {
	case StepNodes:
		return StepNodes, nil
	case StepRelationships:
		return StepRelationships, nil
	case StepAll, "":
		return StepAll, nil
	}
	return "", fmt.Errorf("unknown step %q, want nodes, relationships or all", s)
}

const graphBatchSize = 500

type row = map[string]any

type graphStep struct {
	name   string
	cypher string
	load   func(ctx context.Context, db *gorm.DB) ([]row, error)
}

func rowsOf[M any](where string, toRow func(M) row) func(context.Context, *gorm.DB) ([]row, error) {
	return func(ctx context.Context, db *gorm.DB) ([]row, error) {
		q := db.WithContext(ctx)
		if where != "" {
			q = q.Where(where)
		}
		var records []M
		if err := q.Find(&records).Error; err != nil {
			return nil, err
		}
		out := make([]row, len(records))
		for i, r := range records {
			out[i] = toRow(r)
		}
		return out, nil
	}
}

func val[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// money stores amounts as floats; Cypher has no decimal type.
func money(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}

func mergeNodes(label, key string) string {
	return fmt.Sprintf("UNWIND $rows AS row MERGE (n:%s {%s: row.%s}) SET n += row", label, key, key)
}

var constraints = []string{
	"CREATE CONSTRAINT artist_id_unique IF NOT EXISTS FOR (a:Artist) REQUIRE a.artistId IS UNIQUE",
	"CREATE CONSTRAINT location_id_unique IF NOT EXISTS FOR (l:Location) REQUIRE l.locationId IS UNIQUE",
	"CREATE CONSTRAINT owner_id_unique IF NOT EXISTS FOR (o:Owner) REQUIRE o.ownerId IS UNIQUE",
	"CREATE CONSTRAINT exhibition_id_unique IF NOT EXISTS FOR (e:Exhibition) REQUIRE e.exhibitionId IS UNIQUE",
	"CREATE CONSTRAINT collection_id_unique IF NOT EXISTS FOR (c:Collection) REQUIRE c.collectionId IS UNIQUE",
	"CREATE CONSTRAINT artwork_id_unique IF NOT EXISTS FOR (w:Artwork) REQUIRE w.artworkId IS UNIQUE",
	"CREATE CONSTRAINT media_id_unique IF NOT EXISTS FOR (m:Media) REQUIRE m.mediaId IS UNIQUE",
	"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.userId IS UNIQUE",
	"CREATE CONSTRAINT user_email_unique IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE",
	"CREATE CONSTRAINT restoration_id_unique IF NOT EXISTS FOR (r:Restoration) REQUIRE r.restorationId IS UNIQUE",
	"CREATE CONSTRAINT transaction_id_unique IF NOT EXISTS FOR (t:Transaction) REQUIRE t.transactionId IS UNIQUE",
}

func nodeSteps() []graphStep {
	return []graphStep{
		{"Artist", mergeNodes("Artist", "artistId"), rowsOf("", func(a model.Artist) row {
			return row{"artistId": a.ID, "fullName": a.FullName, "nationality": val(a.Nationality),
				"birthDate": val(a.BirthDate), "deathDate": val(a.DeathDate), "biography": val(a.Biography)}
		})},
		{"Location", mergeNodes("Location", "locationId"), rowsOf("", func(l model.Location) row {
			return row{"locationId": l.ID, "name": l.Name, "address": val(l.Address), "room": val(l.Room), "shelf": val(l.Shelf)}
		})},
		{"Owner", mergeNodes("Owner", "ownerId"), rowsOf("", func(o model.Owner) row {
			return row{"ownerId": o.ID, "name": o.Name, "ownerType": val(o.OwnerType),
				"contactEmail": val(o.ContactEmail), "phone": val(o.Phone), "address": val(o.Address)}
		})},
		{"Exhibition", mergeNodes("Exhibition", "exhibitionId"), rowsOf("", func(e model.Exhibition) row {
			return row{"exhibitionId": e.ID, "name": e.Name, "startDate": val(e.StartDate),
				"endDate": val(e.EndDate), "description": val(e.Description)}
		})},
		{"Collection", mergeNodes("Collection", "collectionId"), rowsOf("", func(c model.Collection) row {
			return row{"collectionId": c.ID, "name": c.Name, "description": val(c.Description), "ownerId": val(c.OwnerID)}
		})},
		{"Artwork", mergeNodes("Artwork", "artworkId"), rowsOf("", func(w model.Artwork) row {
			return row{"artworkId": w.ID, "title": w.Title, "medium": val(w.Medium), "yearCreated": val(w.YearCreated),
				"dimensions": val(w.Dimensions), "notes": val(w.Notes), "triggerGenerated": val(w.TriggerGeneratedNote),
				"createdAt": val(w.CreatedAt)}
		})},
		{"Media", mergeNodes("Media", "mediaId"), rowsOf("", func(m model.MediaFile) row {
			return row{"mediaId": m.ID, "mediaType": val(m.MediaType), "title": val(m.Title), "fileUrl": val(m.FileURL),
				"capturedDate": val(m.CapturedDate), "copyrightHolder": val(m.CopyrightHolder), "notes": val(m.Notes)}
		})},
		{"User", mergeNodes("User", "userId"), rowsOf("", func(u model.User) row {
			return row{"userId": u.ID, "userName": u.UserName, "email": model.NormalizeEmail(u.Email),
				"passwordHash": u.PasswordHash, "roles": u.Roles, "createdAt": u.CreatedAt, "updatedAt": u.UpdatedAt}
		})},
		{"Restoration", mergeNodes("Restoration", "restorationId"), rowsOf("", func(r model.Restoration) row {
			return row{"restorationId": r.ID, "restorationDate": val(r.RestorationDate), "conservator": val(r.Conservator),
				"restorationType": val(r.RestorationType), "details": val(r.Details), "conditionBefore": val(r.ConditionBefore),
				"conditionAfter": val(r.ConditionAfter), "cost": money(r.Cost), "currency": val(r.Currency)}
		})},
		{"Transaction", mergeNodes("Transaction", "transactionId"), rowsOf("", func(t model.Transaction) row {
			return row{"transactionId": t.ID, "txnDate": val(t.TxnDate), "txnType": val(t.TxnType),
				"price": money(t.Price), "currency": val(t.Currency), "notes": val(t.Notes)}
		})},
	}
}

func relationshipSteps() []graphStep {
	return []graphStep{
		{"CREATED", `UNWIND $rows AS row
MATCH (w:Artwork {artworkId: row.artworkId})
MATCH (a:Artist {artistId: row.artistId})
MERGE (a)-[:CREATED]->(w)`, rowsOf("primary_artist_id IS NOT NULL", func(w model.Artwork) row {
			return row{"artworkId": w.ID, "artistId": val(w.PrimaryArtistID)}
		})},
		{"CURRENT_LOCATION", `UNWIND $rows AS row
MATCH (w:Artwork {artworkId: row.artworkId})
MATCH (l:Location {locationId: row.locationId})
MERGE (w)-[:CURRENT_LOCATION]->(l)`, rowsOf("current_location_id IS NOT NULL", func(w model.Artwork) row {
			return row{"artworkId": w.ID, "locationId": val(w.CurrentLocationID)}
		})},
		{"CURRENT_OWNER", `UNWIND $rows AS row
MATCH (w:Artwork {artworkId: row.artworkId})
MATCH (o:Owner {ownerId: row.ownerId})
MERGE (w)-[:CURRENT_OWNER]->(o)`, rowsOf("current_owner_id IS NOT NULL", func(w model.Artwork) row {
			return row{"artworkId": w.ID, "ownerId": val(w.CurrentOwnerID)}
		})},
		{"CONTAINS", `UNWIND $rows AS row
MATCH (c:Collection {collectionId: row.collectionId})
MATCH (w:Artwork {artworkId: row.artworkId})
MERGE (c)-[r:CONTAINS]->(w)
SET r.dateAdded = row.dateAdded, r.itemNotes = row.itemNotes`, rowsOf("", func(i model.CollectionItem) row {
			return row{"collectionId": i.CollectionID, "artworkId": i.ArtworkID, "dateAdded": val(i.DateAdded), "itemNotes": val(i.ItemNotes)}
		})},
		{"ON_EXHIBITION", `UNWIND $rows AS row
MATCH (e:Exhibition {exhibitionId: row.exhibitionId})
MATCH (w:Artwork {artworkId: row.artworkId})
MERGE (w)-[r:ON_EXHIBITION]->(e)
SET r.displayLabel = row.displayLabel, r.notes = row.notes`, rowsOf("", func(x model.ExhibitionArtwork) row {
			return row{"exhibitionId": x.ExhibitionID, "artworkId": x.ArtworkID, "displayLabel": val(x.DisplayLabel), "notes": val(x.Notes)}
		})},
		{"HAS_MEDIA", `UNWIND $rows AS row
MATCH (m:Media {mediaId: row.mediaId})
MATCH (w:Artwork {artworkId: row.artworkId})
MERGE (w)-[:HAS_MEDIA]->(m)`, rowsOf("artwork_id IS NOT NULL", func(m model.MediaFile) row {
			return row{"mediaId": m.ID, "artworkId": val(m.ArtworkID)}
		})},
		{"FEATURED_IN_MEDIA", `UNWIND $rows AS row
MATCH (m:Media {mediaId: row.mediaId})
MATCH (a:Artist {artistId: row.artistId})
MERGE (a)-[:FEATURED_IN_MEDIA]->(m)`, rowsOf("artist_id IS NOT NULL", func(m model.MediaFile) row {
			return row{"mediaId": m.ID, "artistId": val(m.ArtistID)}
		})},
		{"OWNED_BY", `UNWIND $rows AS row
MATCH (w:Artwork {artworkId: row.artworkId})
MATCH (o:Owner {ownerId: row.ownerId})
MERGE (w)-[r:OWNED_BY {ownershipId: row.ownershipId}]->(o)
SET r.acquiredDate = row.acquiredDate, r.relinquishedDate = row.relinquishedDate,
    r.sourceDocument = row.sourceDocument, r.notes = row.notes`, rowsOf("", func(o model.Ownership) row {
			return row{"ownershipId": o.ID, "artworkId": o.ArtworkID, "ownerId": o.OwnerID,
				"acquiredDate": val(o.AcquiredDate), "relinquishedDate": val(o.RelinquishedDate),
				"sourceDocument": val(o.SourceDocument), "notes": val(o.Notes)}
		})},
		{"HAS_RESTORATION", `UNWIND $rows AS row
MATCH (r:Restoration {restorationId: row.restorationId})
MATCH (w:Artwork {artworkId: row.artworkId})
MERGE (w)-[:HAS_RESTORATION]->(r)`, rowsOf("", func(r model.Restoration) row {
			return row{"restorationId": r.ID, "artworkId": r.ArtworkID}
		})},
		{"FOR_ARTWORK", `UNWIND $rows AS row
MATCH (t:Transaction {transactionId: row.transactionId})
MATCH (w:Artwork {artworkId: row.artworkId})
MERGE (t)-[:FOR_ARTWORK]->(w)`, rowsOf("", func(t model.Transaction) row {
			return row{"transactionId": t.ID, "artworkId": t.ArtworkID}
		})},
		{"FROM_OWNER", `UNWIND $rows AS row
MATCH (t:Transaction {transactionId: row.transactionId})
MATCH (o:Owner {ownerId: row.ownerId})
MERGE (o)-[:FROM_OWNER]->(t)`, rowsOf("from_owner_id IS NOT NULL", func(t model.Transaction) row {
			return row{"transactionId": t.ID, "ownerId": val(t.FromOwnerID)}
		})},
		{"TO_OWNER", `UNWIND $rows AS row
MATCH (t:Transaction {transactionId: row.transactionId})
MATCH (o:Owner {ownerId: row.ownerId})
MERGE (t)-[:TO_OWNER]->(o)`, rowsOf("to_owner_id IS NOT NULL", func(t model.Transaction) row {
			return row{"transactionId": t.ID, "ownerId": val(t.ToOwnerID)}
		})},
		{"HELD_AT", `UNWIND $rows AS row
MATCH (e:Exhibition {exhibitionId: row.exhibitionId})
MATCH (l:Location {locationId: row.locationId})
MERGE (e)-[:HELD_AT]->(l)`, rowsOf("location_id IS NOT NULL", func(e model.Exhibition) row {
			return row{"exhibitionId": e.ID, "locationId": val(e.LocationID)}
		})},
	}
}

// GraphCopier copies the relational catalog into the graph. Every write is a
// MERGE on the business key, so the job can be re-run.
type GraphCopier struct {
	source  *gorm.DB
	graph   db.GraphRunner
	logger  log.Logger
	metrics *metrics.Metrics
}

func NewGraphCopier(source *gorm.DB, graph db.GraphRunner, logger log.Logger, m *metrics.Metrics) *GraphCopier {
	return &GraphCopier{source: source, graph: graph, logger: logger.Component("migrate-neo4j"), metrics: m}
}

// Run executes the selected phases and returns the rows merged per step.
func (c *GraphCopier) Run(ctx context.Context, step Step) (map[string]int, error) {
	counts := make(map[string]int)
	if step == StepNodes || step == StepAll {
		for _, stmt := range constraints {
			if _, err := c.graph.Run(ctx, stmt, nil); err != nil {
				return counts, fmt.Errorf("create constraint: %w", err)
			}
		}
		if err := c.runSteps(ctx, nodeSteps(), counts); err != nil {
			return counts, err
		}
	}
	if step == StepRelationships || step == StepAll {
		if err := c.runSteps(ctx, relationshipSteps(), counts); err != nil {
			return counts, err
		}
	}
	return counts, nil
}

func (c *GraphCopier) runSteps(ctx context.Context, steps []graphStep, counts map[string]int) error {
	for _, s := range steps {
		rows, err := s.load(ctx, c.source)
		if err != nil {
			c.logger.Error().Err(err).Str("step", s.name).Msg("read failed")
			return fmt.Errorf("read %s: %w", s.name, err)
		}
		for start := 0; start < len(rows); start += graphBatchSize {
			end := min(start+graphBatchSize, len(rows))
			batch := make([]any, 0, end-start)
			for _, r := range rows[start:end] {
				batch = append(batch, r)
			}
			if _, err := c.graph.Run(ctx, s.cypher, map[string]any{"rows": batch}); err != nil {
				c.logger.Error().Err(err).Str("step", s.name).Msg("write failed")
				return fmt.Errorf("write %s: %w", s.name, err)
			}
		}
		counts[s.name] = len(rows)
		c.metrics.AddCopied("neo4j", s.name, len(rows))
		c.logger.Info().Str("step", s.name).Int("count", len(rows)).Msg("merged")
	}
	return nil
}
