package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePages serves numbered pages of two items each, recording the tokens it was asked for.
type fakePages struct {
	total  int
	failAt int
	tokens []string
}

func (f *fakePages) fetch(_ context.Context, token string) (Page[string], error) {
	f.tokens = append(f.tokens, token)
	n := len(f.tokens)
	if f.failAt == n {
		return Page[string]{}, errors.New("boom")
	}

	page := Page[string]{Items: []string{fmt.Sprintf("p%d-a", n), fmt.Sprintf("p%d-b", n)}}
	if n < f.total {
		page.NextPageToken = fmt.Sprintf("tok%d", n+1)
	}
	return page, nil
}

func TestPages(t *testing.T) {
	ctx := context.Background()

	t.Run("follows tokens until exhausted", func(t *testing.T) {
		f := &fakePages{total: 3}

		items, err := Collect(Pages(ctx, f.fetch, 0))
		require.NoError(t, err)

		assert.Equal(t, []string{"p1-a", "p1-b", "p2-a", "p2-b", "p3-a", "p3-b"}, items)
		assert.Equal(t, []string{"", "tok2", "tok3"}, f.tokens)
	})

	t.Run("max pages caps remote calls", func(t *testing.T) {
		f := &fakePages{total: 5}

		items, err := Collect(Pages(ctx, f.fetch, 2))
		require.NoError(t, err)

		assert.Len(t, f.tokens, 2)
		assert.Equal(t, []string{"p1-a", "p1-b", "p2-a", "p2-b"}, items)
	})

	t.Run("max pages larger than available", func(t *testing.T) {
		f := &fakePages{total: 1}

		items, err := Collect(Pages(ctx, f.fetch, 10))
		require.NoError(t, err)

		assert.Len(t, f.tokens, 1)
		assert.Len(t, items, 2)
	})

	t.Run("errors propagate and stop iteration", func(t *testing.T) {
		f := &fakePages{total: 5, failAt: 2}

		items, err := Collect(Pages(ctx, f.fetch, 0))
		require.EqualError(t, err, "boom")

		assert.Equal(t, []string{"p1-a", "p1-b"}, items)
		assert.Len(t, f.tokens, 2)
	})

	t.Run("early break stops fetching", func(t *testing.T) {
		f := &fakePages{total: 5}

		for item, err := range Pages(ctx, f.fetch, 0) {
			require.NoError(t, err)
			if item == "p1-a" {
				break
			}
		}

		assert.Len(t, f.tokens, 1)
	})

	t.Run("each range restarts from the first page", func(t *testing.T) {
		f := &fakePages{total: 1}
		seq := Pages(ctx, f.fetch, 0)

		_, err := Collect(seq)
		require.NoError(t, err)
		_, err = Collect(seq)
		require.NoError(t, err)

		assert.Equal(t, []string{"", ""}, f.tokens)
	})
}
