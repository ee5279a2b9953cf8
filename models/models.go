package models

// Entity structs shared by the HTTP layer and the storage adapter. Every
// entity carries exactly one identity: the opaque string in the "id" field,
// assigned by the storage adapter on insert. The mapstructure tags drive the
// record conversion at the storage boundary; the json tags drive the wire
// format.

// Exercise categories. Cardio exercises are never compound.
const (
	CategoryStrength = "Strength"
	CategoryCardio   = "Cardio"
)

// User is an account record. Passwords are stored and compared in plaintext;
// this backend is not safe for production use.
type User struct {
	Username string `mapstructure:"username" json:"username"`
	Email    string `mapstructure:"email" json:"email"`
	Password string `mapstructure:"password" json:"password"`
}

// Habit is a per-user habit entry.
type Habit struct {
	ID          string `mapstructure:"id" json:"id"`
	Username    string `mapstructure:"username" json:"username"`
	Title       string `mapstructure:"title" json:"title"`
	Description string `mapstructure:"description" json:"description"`
}

// Affirmation is one entry of the global affirmation catalog. It is not
// scoped to a user.
type Affirmation struct {
	ID   string `mapstructure:"id" json:"id"`
	Text string `mapstructure:"text" json:"text"`
}

// WaterIntakeSetting holds one user's bottle configuration and running
// intake. There is at most one per username; writes are upserts.
type WaterIntakeSetting struct {
	ID         string `mapstructure:"id" json:"id"`
	Username   string `mapstructure:"username" json:"username"`
	BottleName string `mapstructure:"bottleName" json:"bottleName"`
	BottleOz   int    `mapstructure:"bottleOz" json:"bottleOz"`
	DailyGoal  int    `mapstructure:"dailyGoal" json:"dailyGoal"`
	CurrentOz  int    `mapstructure:"currentOz" json:"currentOz"`
}

// Exercise is one entry of a user's exercise library. Default catalog
// entries are tagged CreatedByUser=false and have fixed ids.
type Exercise struct {
	ID            string `mapstructure:"id" json:"id"`
	Username      string `mapstructure:"username" json:"username"`
	Name          string `mapstructure:"name" json:"name"`
	Muscle        string `mapstructure:"muscle" json:"muscle"`
	Equipment     string `mapstructure:"equipment" json:"equipment"`
	Compound      bool   `mapstructure:"compound" json:"compound"`
	Category      string `mapstructure:"category" json:"category"`
	CreatedByUser bool   `mapstructure:"createdByUser" json:"createdByUser"`
}

// Exam is a scheduled exam. Score and Done start zero-valued and are only
// set through partial updates.
type Exam struct {
	ID           string  `mapstructure:"id" json:"id"`
	Username     string  `mapstructure:"username" json:"username"`
	Course       string  `mapstructure:"course" json:"course"`
	Date         string  `mapstructure:"date" json:"date"`
	PlannedHours float64 `mapstructure:"planned_hours" json:"planned_hours"`
	Score        float64 `mapstructure:"score" json:"score"`
	Done         bool    `mapstructure:"done" json:"done"`
}

// Assignment is a tracked piece of coursework. Status, Priority and Type are
// free-form strings; see DefaultStatus and friends for the create defaults.
type Assignment struct {
	ID       string `mapstructure:"id" json:"id"`
	Username string `mapstructure:"username" json:"username"`
	Title    string `mapstructure:"title" json:"title"`
	Course   string `mapstructure:"course" json:"course"`
	DueDate  string `mapstructure:"dueDate" json:"dueDate"`
	Status   string `mapstructure:"status" json:"status"`
	Priority string `mapstructure:"priority" json:"priority"`
	Type     string `mapstructure:"type" json:"type"`
	Points   int    `mapstructure:"points" json:"points"`
}

// Assignment create defaults.
const (
	DefaultStatus   = "Pending"
	DefaultPriority = "Medium"
	DefaultType     = "Homework"
)

// Course is a course catalog entry. Code doubles as a secondary lookup key
// but is not unique.
type Course struct {
	ID        string `mapstructure:"id" json:"id"`
	Code      string `mapstructure:"code" json:"code"`
	Name      string `mapstructure:"name" json:"name"`
	Professor string `mapstructure:"professor" json:"professor"`
}

// Normalize applies the derived-field rule for exercises: a cardio exercise
// is never compound, regardless of what the client sent. Called on create and
// after merging a partial update.
func (e *Exercise) Normalize() {
	if e.Category == CategoryCardio {
		e.Compound = false
	}
}
