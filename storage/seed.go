package storage

import (
	"context"

	"trackly/models"
)

// SeedAffirmations populates the affirmation catalog if it is empty. Called
// once at process start. The guard is a plain count check, so reseeding never
// happens once anything is in the collection, including rows a previous seed
// inserted. Two processes starting at once can both pass the check and
// insert duplicates; nothing in the store constrains against that.
func SeedAffirmations(ctx context.Context, store Store) error {
	n, err := store.Count(ctx, CollAffirmations, nil)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	recs := make([]Record, 0, len(models.DefaultAffirmations))
	for _, text := range models.DefaultAffirmations {
		recs = append(recs, Record{"text": text})
	}
	return store.InsertMany(ctx, CollAffirmations, recs)
}

// SeedExercises populates a user's exercise library with the default catalog
// if they have no exercise records yet. Called on the first read of the
// library, not on registration. Same count-check idempotence as
// SeedAffirmations, scoped per username.
func SeedExercises(ctx context.Context, store Store, username string) error {
	n, err := store.Count(ctx, CollExercises, Filter{"username": username})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	defaults := models.DefaultExercises(username)
	recs := make([]Record, 0, len(defaults))
	for _, ex := range defaults {
		rec, err := ToRecord(ex)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}
	return store.InsertMany(ctx, CollExercises, recs)
}
