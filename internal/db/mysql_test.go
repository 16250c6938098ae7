package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskDSN(t *testing.T) {
	masked := MaskDSN("museum:s3cret@tcp(db:3306)/ArtMuseumDb?parseTime=true")
	assert.NotContains(t, masked, "s3cret")
	assert.Contains(t, masked, "museum:*****@tcp(db:3306)/ArtMuseumDb")
}

func TestMaskDSNUnparseable(t *testing.T) {
	assert.Equal(t, "<unparseable dsn>", MaskDSN("not a dsn"))
}
