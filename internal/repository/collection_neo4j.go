package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"artmuseum/internal/db"
	apperrors "artmuseum/internal/errors"
	"artmuseum/internal/model"
	"artmuseum/internal/sequence"
)

const collectionProjection = `c.collectionId AS id, c.name AS name, c.description AS description, c.ownerId AS ownerId`

type neo4jCollectionRepository struct {
	graph db.GraphRunner
	alloc sequence.Allocator
}

// NewNeo4jCollectionRepository addresses :Collection nodes by collectionId.
// With a nil alloc the next id is max(collectionId)+1 computed inside the
// CREATE statement.
func NewNeo4jCollectionRepository(graph db.GraphRunner, alloc sequence.Allocator) CollectionRepository {
	return &neo4jCollectionRepository{graph: graph, alloc: alloc}
}

func collectionFromRecord(rec *neo4j.Record) model.Collection {
	return model.Collection{
		ID:          recordInt(rec, "id"),
		OwnerID:     recordIntPtr(rec, "ownerId"),
		Name:        recordString(rec, "name"),
		Description: recordStringPtr(rec, "description"),
	}
}

func (r *neo4jCollectionRepository) GetByID(ctx context.Context, id int64) (*model.Collection, error) {
	op := fmt.Sprintf("neo4j get collection %d", id)
	res, err := r.graph.Run(ctx,
		`MATCH (c:Collection {collectionId: $id}) RETURN `+collectionProjection,
		map[string]any{"id": id})
	if err != nil {
		return nil, translate(op, err)
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	c := collectionFromRecord(res.Records[0])
	return &c, nil
}

func (r *neo4jCollectionRepository) List(ctx context.Context) ([]model.Collection, error) {
	res, err := r.graph.Run(ctx,
		`MATCH (c:Collection) RETURN `+collectionProjection+` ORDER BY c.collectionId`, nil)
	if err != nil {
		return nil, translate("neo4j list collections", err)
	}
	out := make([]model.Collection, 0, len(res.Records))
	for _, rec := range res.Records {
		out = append(out, collectionFromRecord(rec))
	}
	return out, nil
}

func (r *neo4jCollectionRepository) Create(ctx context.Context, collection *model.Collection) error {
	params := map[string]any{
		"name":        collection.Name,
		"description": stringOrNil(collection.Description),
		"ownerId":     int64OrNil(collection.OwnerID),
	}

	cypher := `CALL { MATCH (x:Collection) RETURN coalesce(max(x.collectionId), 0) + 1 AS nextId }
CREATE (c:Collection {collectionId: nextId, name: $name, description: $description, ownerId: $ownerId})
RETURN c.collectionId AS id`
	if r.alloc != nil {
		id, err := r.alloc.Next(ctx, "collections", r.maxID)
		if err != nil {
			return translate("neo4j next collection id", err)
		}
		params["id"] = id
		cypher = `CREATE (c:Collection {collectionId: $id, name: $name, description: $description, ownerId: $ownerId})
RETURN c.collectionId AS id`
	}

	res, err := r.graph.Run(ctx, cypher, params)
	if err != nil {
		return translate("neo4j create collection", err)
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("neo4j create collection: no record returned")
	}
	collection.ID = recordInt(res.Records[0], "id")
	return nil
}

func (r *neo4jCollectionRepository) maxID(ctx context.Context) (int64, error) {
	res, err := r.graph.Run(ctx, `MATCH (c:Collection) RETURN coalesce(max(c.collectionId), 0) AS maxId`, nil)
	if err != nil || len(res.Records) == 0 {
		return 0, err
	}
	return recordInt(res.Records[0], "maxId"), nil
}

func (r *neo4jCollectionRepository) UpdateOwner(ctx context.Context, id, ownerID int64) (*model.Collection, error) {
	op := fmt.Sprintf("neo4j update collection %d owner", id)
	res, err := r.graph.Run(ctx,
		`MATCH (c:Collection {collectionId: $id}) SET c.ownerId = $ownerId RETURN `+collectionProjection,
		map[string]any{"id": id, "ownerId": ownerID})
	if err != nil {
		return nil, translate(op, err)
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	c := collectionFromRecord(res.Records[0])
	return &c, nil
}

func (r *neo4jCollectionRepository) Delete(ctx context.Context, id int64) error {
	op := fmt.Sprintf("neo4j delete collection %d", id)
	res, err := r.graph.Run(ctx,
		`MATCH (c:Collection {collectionId: $id}) DETACH DELETE c RETURN count(c) AS deleted`,
		map[string]any{"id": id})
	if err != nil {
		return translate(op, err)
	}
	if len(res.Records) == 0 || recordInt(res.Records[0], "deleted") == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	return nil
}
