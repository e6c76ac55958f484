//go:build unit

package pgconv_test

import (
	"math"
	"testing"
	"time"

	"cardshop/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestIntToInt32(t *testing.T) {
	assert.Equal(t, int32(7), pgconv.IntToInt32(7))
	assert.Equal(t, int32(math.MaxInt32), pgconv.IntToInt32(math.MaxInt32+10))
	assert.Equal(t, int32(math.MinInt32), pgconv.IntToInt32(math.MinInt32-10))
}

func TestNullableRoundTrip(t *testing.T) {
	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(nil)))
	id := uuid.New()
	assert.Equal(t, &id, pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(&id)))

	assert.Nil(t, pgconv.TimePtrFromPgtype(pgconv.TimePtrToPgtype(nil)))
	now := time.Now()
	got := pgconv.TimePtrFromPgtype(pgconv.TimeToPgtype(now))
	if assert.NotNil(t, got) {
		assert.True(t, now.Equal(*got))
	}

	s := "x"
	assert.Equal(t, &s, pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(&s)))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.False(t, pgconv.IsNoRows(assert.AnError))
}
