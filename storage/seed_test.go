package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"trackly/models"
)

func TestSeedAffirmationsOnlyWhenEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, SeedAffirmations(ctx, store))

	n, err := store.Count(ctx, CollAffirmations, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(len(models.DefaultAffirmations)), n)

	// Second run must be a no-op: the guard sees the rows the first run
	// inserted.
	assert.NoError(t, SeedAffirmations(ctx, store))
	n, err = store.Count(ctx, CollAffirmations, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(len(models.DefaultAffirmations)), n)
}

func TestSeedAffirmationsSkipsNonEmptyCatalog(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Any existing row suppresses seeding, even a non-default one.
	_, err := store.Insert(ctx, CollAffirmations, Record{"text": "Custom."})
	assert.NoError(t, err)

	assert.NoError(t, SeedAffirmations(ctx, store))
	n, err := store.Count(ctx, CollAffirmations, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSeedExercisesPerUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, SeedExercises(ctx, store, "alice"))
	assert.NoError(t, SeedExercises(ctx, store, "alice"))

	n, err := store.Count(ctx, CollExercises, Filter{"username": "alice"})
	assert.NoError(t, err)
	assert.Equal(t, int64(17), n, "the 17-item catalog must be inserted exactly once")

	// Seeding is scoped by username; a second user gets their own copy.
	assert.NoError(t, SeedExercises(ctx, store, "bob"))
	n, err = store.Count(ctx, CollExercises, Filter{"username": "bob"})
	assert.NoError(t, err)
	assert.Equal(t, int64(17), n)

	// Defaults are tagged as such and split 11 strength / 6 cardio.
	records, err := store.Find(ctx, CollExercises, Filter{"username": "alice"})
	assert.NoError(t, err)
	exercises := []models.Exercise{}
	assert.NoError(t, DecodeRecords(records, &exercises))

	strength, cardio := 0, 0
	for _, ex := range exercises {
		assert.False(t, ex.CreatedByUser)
		switch ex.Category {
		case models.CategoryStrength:
			strength++
		case models.CategoryCardio:
			cardio++
			assert.False(t, ex.Compound, "cardio defaults are never compound")
		}
	}
	assert.Equal(t, 11, strength)
	assert.Equal(t, 6, cardio)
}
