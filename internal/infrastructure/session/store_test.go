package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/core/record"
	"knkadmin/internal/metadata"
	"knkadmin/internal/ui/form"
	"knkadmin/pkg/logger"
)

func newForm() *form.Form {
	cfg := metadata.NewEntity("street", "Street", "",
		metadata.FieldDescriptor{Name: "name", Label: "Name", Kind: metadata.KindText})
	f := form.New(cfg, record.New(), nil, nil, false, form.WithLogger(logger.Nop()))
	f.Mount(context.Background())
	return f
}

func TestPutGetRemove(t *testing.T) {
	s := NewStore(4, time.Minute)
	f := newForm()

	id := s.Put(&Entry{Type: "street", Form: f, EditID: int64(3)})
	require.NotEmpty(t, id)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Same(t, f, got.Form)
	assert.Equal(t, int64(3), got.EditID)
	assert.NotNil(t, got.Nav)

	s.Remove(id)
	assert.False(t, f.Mounted())
	_, err = s.Get(id)
	assert.True(t, apperror.IsNotFound(err))
}

func TestEvictionUnmounts(t *testing.T) {
	s := NewStore(1, time.Minute)
	first := newForm()
	second := newForm()

	s.Put(&Entry{Form: first})
	s.Put(&Entry{Form: second})

	assert.False(t, first.Mounted())
	assert.True(t, second.Mounted())
	assert.Equal(t, 1, s.Len())

	s.Close()
	assert.False(t, second.Mounted())
}
