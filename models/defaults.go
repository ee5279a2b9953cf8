package models

// DefaultAffirmations is the fixed catalog inserted into the affirmations
// collection on startup when it is empty. Order matters: the front end shows
// them in insertion order.
var DefaultAffirmations = []string{
	"I am capable of achieving my goals.",
	"Every day I am getting stronger and healthier.",
	"I choose progress over perfection.",
	"My habits shape the person I am becoming.",
	"I am in control of how I spend my time.",
	"Small steps every day lead to big results.",
	"I deserve rest as much as I deserve success.",
	"Challenges help me grow.",
	"I am proud of how far I have come.",
	"Today is a fresh start.",
}

// defaultExerciseCatalog is the fixed starter library seeded into a new
// user's exercise collection: eleven strength movements and six cardio ones.
// The id slugs get the owner's username appended so identities stay unique
// across users.
var defaultExerciseCatalog = []Exercise{
	{ID: "default-bench-press", Name: "Bench Press", Muscle: "Chest", Equipment: "Barbell", Compound: true, Category: CategoryStrength},
	{ID: "default-squat", Name: "Squat", Muscle: "Quads", Equipment: "Barbell", Compound: true, Category: CategoryStrength},
	{ID: "default-deadlift", Name: "Deadlift", Muscle: "Back", Equipment: "Barbell", Compound: true, Category: CategoryStrength},
	{ID: "default-overhead-press", Name: "Overhead Press", Muscle: "Shoulders", Equipment: "Barbell", Compound: true, Category: CategoryStrength},
	{ID: "default-barbell-row", Name: "Barbell Row", Muscle: "Back", Equipment: "Barbell", Compound: true, Category: CategoryStrength},
	{ID: "default-pull-up", Name: "Pull Up", Muscle: "Back", Equipment: "Bodyweight", Compound: true, Category: CategoryStrength},
	{ID: "default-dip", Name: "Dip", Muscle: "Triceps", Equipment: "Bodyweight", Compound: true, Category: CategoryStrength},
	{ID: "default-lunge", Name: "Lunge", Muscle: "Quads", Equipment: "Dumbbell", Compound: true, Category: CategoryStrength},
	{ID: "default-bicep-curl", Name: "Bicep Curl", Muscle: "Biceps", Equipment: "Dumbbell", Compound: false, Category: CategoryStrength},
	{ID: "default-tricep-extension", Name: "Tricep Extension", Muscle: "Triceps", Equipment: "Cable", Compound: false, Category: CategoryStrength},
	{ID: "default-lat-pulldown", Name: "Lat Pulldown", Muscle: "Back", Equipment: "Cable", Compound: false, Category: CategoryStrength},
	{ID: "default-running", Name: "Running", Muscle: "Legs", Equipment: "None", Compound: false, Category: CategoryCardio},
	{ID: "default-cycling", Name: "Cycling", Muscle: "Legs", Equipment: "Bike", Compound: false, Category: CategoryCardio},
	{ID: "default-rowing", Name: "Rowing", Muscle: "Full Body", Equipment: "Rower", Compound: false, Category: CategoryCardio},
	{ID: "default-jump-rope", Name: "Jump Rope", Muscle: "Calves", Equipment: "Rope", Compound: false, Category: CategoryCardio},
	{ID: "default-swimming", Name: "Swimming", Muscle: "Full Body", Equipment: "None", Compound: false, Category: CategoryCardio},
	{ID: "default-elliptical", Name: "Elliptical", Muscle: "Legs", Equipment: "Elliptical", Compound: false, Category: CategoryCardio},
}

// DefaultExercises returns the starter library for a user, every entry
// tagged CreatedByUser=false so the front end can tell defaults from user
// additions.
func DefaultExercises(username string) []Exercise {
	out := make([]Exercise, 0, len(defaultExerciseCatalog))
	for _, ex := range defaultExerciseCatalog {
		ex.ID = ex.ID + "-" + username
		ex.Username = username
		ex.CreatedByUser = false
		out = append(out, ex)
	}
	return out
}
