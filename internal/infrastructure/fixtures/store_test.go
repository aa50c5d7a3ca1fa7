package fixtures

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/core/record"
	"knkadmin/internal/domain/world"
	"knkadmin/internal/dto"
	"knkadmin/pkg/logger"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(world.MustRegistry(), dto.NewCodecs(), logger.Nop())
	require.NoError(t, err)
	return s
}

func TestSeed(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	tests := []struct {
		tag  string
		want int
	}{
		{world.TypeTown, 1},
		{world.TypeDistrict, 2},
		{world.TypeStreet, 2},
		{world.TypeStructure, 3},
		{world.TypeStorage, 3},
		{world.TypeItem, 2},
		{world.TypeLocation, 6},
		{world.TypeDominion, 0},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			rows, err := s.FetchList(ctx, tt.tag)
			require.NoError(t, err)
			assert.Len(t, rows, tt.want)
		})
	}

	hall, err := s.FetchOne(ctx, world.TypeStructure, 4)
	require.NoError(t, err)
	assert.Equal(t, "Town Hall", hall.Value("name"))
	district, ok := hall.Value("district").(record.Record)
	require.True(t, ok)
	assert.Equal(t, "North District", district.Value("name"))
}

func TestFetchListReturnsCopies(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	rows, err := s.FetchList(ctx, world.TypeStreet)
	require.NoError(t, err)
	rows[0].Set("name", "changed")

	again, err := s.FetchList(ctx, world.TypeStreet)
	require.NoError(t, err)
	assert.Equal(t, "Main Street", again[0].Value("name"))
}

func TestCreateMaterializesNewReferences(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	payload := record.Of(
		"id", int64(0),
		"name", "Harbour Office",
		"district", record.Of("id", int64(-1), "name", "Harbour"),
		"street", record.Of("id", int64(1), "name", "Main Street"),
		"streetNumber", int64(9),
	)
	created, err := s.Create(ctx, world.TypeStructure, payload)
	require.NoError(t, err)

	id, _ := record.Number(created.Value("id"))
	assert.GreaterOrEqual(t, id, float64(10))

	district := created.Value("district").(record.Record)
	did, _ := record.Number(district.Value("id"))
	assert.Positive(t, did)
	assert.Equal(t, 3, s.Len(world.TypeDistrict))
	assert.Equal(t, 4, s.Len(world.TypeStructure))

	street := created.Value("street").(record.Record)
	assert.Equal(t, int64(1), street.Value("id"))
	assert.Equal(t, 2, s.Len(world.TypeStreet))
}

func TestUpdateKeepsID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	updated, err := s.Update(ctx, world.TypeStreet, "2", record.Of("id", int64(99), "name", "High Road"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Value("id"))

	got, err := s.FetchOne(ctx, world.TypeStreet, int64(2))
	require.NoError(t, err)
	assert.Equal(t, "High Road", got.Value("name"))
}

func TestDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, world.TypeItem, 1))
	assert.Equal(t, 1, s.Len(world.TypeItem))

	err := s.Delete(ctx, world.TypeItem, 1)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUnknownType(t *testing.T) {
	s := newStore(t)
	_, err := s.FetchList(context.Background(), "dragon")
	assert.True(t, apperror.HasCode(err, apperror.CodeUnknownEntity))
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	s := NewEmpty(nil, logger.Nop())
	assert.ErrorIs(t, s.Load([]byte("{"), dto.NewCodecs()), record.ErrInvalidJSON)
}
