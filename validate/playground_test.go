package validate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rpckit/validate"
)

type createProduct struct {
	Name  string  `json:"name" validate:"required,min=2"`
	Price float64 `json:"price" validate:"gt=0"`
	Kind  string  `json:"kind" validate:"omitempty,oneof=tea coffee"`
}

func TestStruct(t *testing.T) {
	t.Parallel()

	v := validate.Struct[createProduct](validate.New())

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		got, err := v.Parse(context.Background(), validate.Input{
			Source: validate.Body,
			Body:   []byte(`{"name":"Oolong","price":4.5,"kind":"tea"}`),
		})

		require.NoError(t, err)
		assert.Equal(t, createProduct{Name: "Oolong", Price: 4.5, Kind: "tea"}, got)
	})

	t.Run("tag failures use json names", func(t *testing.T) {
		t.Parallel()
		_, err := v.Parse(context.Background(), validate.Input{
			Source: validate.Body,
			Body:   []byte(`{"name":"X","price":0,"kind":"juice"}`),
		})

		require.Error(t, err)
		errs, ok := validate.AsErrors(err)
		require.True(t, ok)
		assert.True(t, errs.Has("name"))
		assert.True(t, errs.Has("price"))
		assert.True(t, errs.Has("kind"))
		assert.NotContains(t, err.Error(), "juice")
	})

	t.Run("decode failure", func(t *testing.T) {
		t.Parallel()
		_, err := v.Parse(context.Background(), validate.Input{
			Source: validate.Body,
			Body:   []byte(`not json`),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, validate.ErrDecode)
		_, ok := validate.AsErrors(err)
		assert.False(t, ok)
	})

	t.Run("query source", func(t *testing.T) {
		t.Parallel()
		type search struct {
			Term string `query:"q" validate:"required"`
			Page int    `query:"page" validate:"gte=1"`
		}
		qv := validate.Struct[search](nil)

		got, err := qv.Parse(context.Background(), validate.Input{
			Source: validate.Query,
			Query:  map[string][]string{"q": {"tea"}, "page": {"2"}},
		})
		require.NoError(t, err)
		assert.Equal(t, search{Term: "tea", Page: 2}, got)

		_, err = qv.Parse(context.Background(), validate.Input{Source: validate.Query})
		errs, ok := validate.AsErrors(err)
		require.True(t, ok)
		assert.True(t, errs.Has("q"))
		assert.True(t, errs.Has("page"))
	})
}
