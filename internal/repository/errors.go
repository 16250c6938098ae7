package repository

import (
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	apperrors "artmuseum/internal/errors"
)

const neo4jConstraintFailed = "Neo.ClientError.Schema.ConstraintValidationFailed"

// translate maps backend-specific failures onto the shared taxonomy and adds
// op as context. Unknown errors are wrapped unchanged.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}

	var neoErr *neo4j.Neo4jError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, apperrors.ErrConflict)
	case errors.As(err, &neoErr) && neoErr.Code == neo4jConstraintFailed:
		return fmt.Errorf("%s: %w", op, apperrors.ErrConflict)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err), neo4j.IsConnectivityError(err):
		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrBackendUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
