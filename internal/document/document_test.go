package document

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"artmuseum/internal/model"
)

func TestFromRestorationKeepsExactCost(t *testing.T) {
	doc := FromRestoration(model.Restoration{
		ID:        4,
		ArtworkID: 9,
		Cost:      decimal.NewNullDecimal(decimal.RequireFromString("1250.75")),
	})

	require.NotNil(t, doc.Cost)
	assert.Equal(t, "1250.75", doc.Cost.String())
	assert.Equal(t, int64(4), doc.RestorationID)
}

func TestFromTransactionWithoutPrice(t *testing.T) {
	doc := FromTransaction(model.Transaction{ID: 2, ArtworkID: 1})
	assert.Nil(t, doc.Price)
}

func TestCollectionDocumentShape(t *testing.T) {
	owner := int64(3)
	doc := FromCollection(model.Collection{ID: 12, Name: "Impressionists", OwnerID: &owner})

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	assert.Equal(t, int64(12), fields["CollectionID"])
	assert.Equal(t, "Impressionists", fields["Name"])
	assert.NotContains(t, fields, "_id")
}

func TestCollectionModelExposesDocumentID(t *testing.T) {
	oid := primitive.NewObjectID()
	m := Collection{ID: oid, CollectionID: 5, Name: "Prints"}.Model()

	assert.Equal(t, int64(5), m.ID)
	assert.Equal(t, oid.Hex(), m.DocumentID)
}

func TestFromUserKeepsPasswordHash(t *testing.T) {
	doc := FromUser(model.User{ID: 8, Email: " Ada@Museum.org", PasswordHash: "$2a$10$x"})
	assert.Equal(t, "$2a$10$x", doc.PasswordHash)
	assert.Equal(t, "ada@museum.org", doc.Email)
	assert.Equal(t, int64(8), doc.Model().ID)
}
