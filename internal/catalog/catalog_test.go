package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAndGet(t *testing.T) {
	cat := New()

	list := cat.List()
	require.Len(t, list, 6)

	for _, exp := range list {
		got, err := cat.Get(exp.ID)
		require.NoError(t, err)
		assert.Equal(t, exp.Name, got.Name)
		assert.Equal(t, exp.Price, got.Price)
		assert.NotEmpty(t, got.Features)
		assert.Len(t, got.Reviews, 2)
	}

	_, err := cat.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReturnsCopies(t *testing.T) {
	cat := New()

	list := cat.List()
	list[0].Name = "mutated"
	list[0].Features[0] = "mutated"
	list[0].Reviews[0].Comment = "mutated"

	got, err := cat.Get(list[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", got.Name)
	assert.NotEqual(t, "mutated", got.Features[0])
	assert.NotEqual(t, "mutated", got.Reviews[0].Comment)
}

func TestAddReviewRecomputesRating(t *testing.T) {
	cat := New()

	before, err := cat.Get(2)
	require.NoError(t, err)

	review, err := cat.AddReview(2, "Min-ji", "", 3, "good food")
	require.NoError(t, err)
	assert.Equal(t, 3, review.Rating)
	assert.Equal(t, "Min-ji", review.User)
	assert.NotEmpty(t, review.Date)

	after, err := cat.Get(2)
	require.NoError(t, err)
	require.Len(t, after.Reviews, len(before.Reviews)+1)

	sum := 0
	for _, r := range after.Reviews {
		sum += r.Rating
	}
	want := float64(sum) / float64(len(after.Reviews))
	assert.Equal(t, want, after.Rating)
}

func TestAddReviewAssignsNextID(t *testing.T) {
	cat := New()

	first, err := cat.AddReview(1, "a", "", 5, "one")
	require.NoError(t, err)
	second, err := cat.AddReview(1, "b", "", 4, "two")
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)
}

func TestAddReviewRejectsBadInput(t *testing.T) {
	cat := New()

	_, err := cat.AddReview(1, "a", "", 0, "too low")
	assert.Error(t, err)
	_, err = cat.AddReview(1, "a", "", 6, "too high")
	assert.Error(t, err)
	_, err = cat.AddReview(42, "a", "", 4, "no such experience")
	assert.ErrorIs(t, err, ErrNotFound)
}
