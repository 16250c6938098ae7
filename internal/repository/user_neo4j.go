package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"artmuseum/internal/db"
	apperrors "artmuseum/internal/errors"
	"artmuseum/internal/model"
	"artmuseum/internal/sequence"
)

const userProjection = `u.userId AS id, u.userName AS userName, u.email AS email, u.passwordHash AS passwordHash, u.roles AS roles, u.createdAt AS createdAt, u.updatedAt AS updatedAt`

type neo4jUserRepository struct {
	graph db.GraphRunner
	alloc sequence.Allocator
	now   func() time.Time
}

// NewNeo4jUserRepository addresses :User nodes by userId. alloc may be nil.
func NewNeo4jUserRepository(graph db.GraphRunner, alloc sequence.Allocator) UserRepository {
	return &neo4jUserRepository{graph: graph, alloc: alloc, now: time.Now}
}

func userFromRecord(rec *neo4j.Record) model.User {
	return model.User{
		ID:           recordInt(rec, "id"),
		UserName:     recordString(rec, "userName"),
		Email:        recordString(rec, "email"),
		PasswordHash: recordString(rec, "passwordHash"),
		Roles:        recordString(rec, "roles"),
		CreatedAt:    recordTime(rec, "createdAt"),
		UpdatedAt:    recordTime(rec, "updatedAt"),
	}
}

func (r *neo4jUserRepository) one(ctx context.Context, op, cypher string, params map[string]any) (*model.User, error) {
	res, err := r.graph.Run(ctx, cypher, params)
	if err != nil {
		return nil, translate(op, err)
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	u := userFromRecord(res.Records[0])
	return &u, nil
}

func (r *neo4jUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.one(ctx, fmt.Sprintf("neo4j get user %d", id),
		`MATCH (u:User {userId: $id}) RETURN `+userProjection,
		map[string]any{"id": id})
}

func (r *neo4jUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.one(ctx, "neo4j find user by email",
		`MATCH (u:User {email: $email}) RETURN `+userProjection+` LIMIT 1`,
		map[string]any{"email": email})
}

func (r *neo4jUserRepository) List(ctx context.Context) ([]model.User, error) {
	res, err := r.graph.Run(ctx, `MATCH (u:User) RETURN `+userProjection+` ORDER BY u.userId`, nil)
	if err != nil {
		return nil, translate("neo4j list users", err)
	}
	out := make([]model.User, 0, len(res.Records))
	for _, rec := range res.Records {
		out = append(out, userFromRecord(rec))
	}
	return out, nil
}

func (r *neo4jUserRepository) Create(ctx context.Context, user *model.User) error {
	now := r.now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	params := map[string]any{
		"userName":     user.UserName,
		"email":        user.Email,
		"passwordHash": user.PasswordHash,
		"roles":        user.Roles,
		"createdAt":    user.CreatedAt,
		"updatedAt":    user.UpdatedAt,
	}

	cypher := `CALL { MATCH (x:User) RETURN coalesce(max(x.userId), 0) + 1 AS nextId }
CREATE (u:User {userId: nextId, userName: $userName, email: $email, passwordHash: $passwordHash, roles: $roles, createdAt: $createdAt, updatedAt: $updatedAt})
RETURN u.userId AS id`
	if r.alloc != nil {
		id, err := r.alloc.Next(ctx, "users", r.maxID)
		if err != nil {
			return translate("neo4j next user id", err)
		}
		params["id"] = id
		cypher = `CREATE (u:User {userId: $id, userName: $userName, email: $email, passwordHash: $passwordHash, roles: $roles, createdAt: $createdAt, updatedAt: $updatedAt})
RETURN u.userId AS id`
	}

	res, err := r.graph.Run(ctx, cypher, params)
	if err != nil {
		return translate("neo4j create user", err)
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("neo4j create user: no record returned")
	}
	user.ID = recordInt(res.Records[0], "id")
	return nil
}

func (r *neo4jUserRepository) maxID(ctx context.Context) (int64, error) {
	res, err := r.graph.Run(ctx, `MATCH (u:User) RETURN coalesce(max(u.userId), 0) AS maxId`, nil)
	if err != nil || len(res.Records) == 0 {
		return 0, err
	}
	return recordInt(res.Records[0], "maxId"), nil
}

func (r *neo4jUserRepository) UpdateRoles(ctx context.Context, id int64, roles string) (*model.User, error) {
	return r.one(ctx, fmt.Sprintf("neo4j update user %d roles", id),
		`MATCH (u:User {userId: $id}) SET u.roles = $roles, u.updatedAt = $updatedAt RETURN `+userProjection,
		map[string]any{"id": id, "roles": roles, "updatedAt": r.now().UTC()})
}

func (r *neo4jUserRepository) Delete(ctx context.Context, id int64) error {
	op := fmt.Sprintf("neo4j delete user %d", id)
	res, err := r.graph.Run(ctx,
		`MATCH (u:User {userId: $id}) DETACH DELETE u RETURN count(u) AS deleted`,
		map[string]any{"id": id})
	if err != nil {
		return translate(op, err)
	}
	if len(res.Records) == 0 || recordInt(res.Records[0], "deleted") == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	return nil
}
