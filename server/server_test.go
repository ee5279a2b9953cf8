package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"trackly/models"
	"trackly/storage"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	store, err := storage.NewCSVStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create csv store: %v", err)
	}
	return Router(store)
}

// do sends one request through the router and returns the recorder.
func do(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
}

func detail(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	body := map[string]string{}
	decodeResponse(t, rr, &body)
	return body["detail"]
}

func TestRegisterAndLoginScenario(t *testing.T) {
	router := newTestRouter(t)

	// Fresh registration succeeds
	rr := do(t, router, http.MethodPost, "/register", models.User{
		Username: "alice", Email: "alice@x.com", Password: "pw1",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	// Username collision reports before the email is even looked at
	rr = do(t, router, http.MethodPost, "/register", models.User{
		Username: "alice", Email: "other@x.com", Password: "pw2",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Username already exists", detail(t, rr))

	// Email collision under a fresh username
	rr = do(t, router, http.MethodPost, "/register", models.User{
		Username: "alice2", Email: "alice@x.com", Password: "pw2",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Email already registered", detail(t, rr))

	// Login succeeds only on an exact username/password match
	rr = do(t, router, http.MethodPost, "/login", models.User{Username: "alice", Password: "pw1"})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, router, http.MethodPost, "/login", models.User{Username: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, router, http.MethodPost, "/login", models.User{Username: "nobody", Password: "pw1"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRegisterRejectsBadPayloads(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/register", models.User{Username: "alice", Email: "not-an-email", Password: "pw1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, router, http.MethodPost, "/register", models.User{Email: "alice@x.com", Password: "pw1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// A rejected registration leaves no row behind
	rr = do(t, router, http.MethodPost, "/login", models.User{Username: "alice", Password: "pw1"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHabitLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/habits", map[string]string{
		"username": "alice", "title": "Read",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	var created struct {
		Message string       `json:"message"`
		Habit   models.Habit `json:"habit"`
	}
	decodeResponse(t, rr, &created)
	assert.Equal(t, "Habit created", created.Message)
	assert.NotEmpty(t, created.Habit.ID)
	assert.Equal(t, "", created.Habit.Description, "description defaults to empty")

	rr = do(t, router, http.MethodGet, "/habits?username=alice", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	habits := []models.Habit{}
	decodeResponse(t, rr, &habits)
	assert.Equal(t, 1, len(habits))

	// Another user's listing is empty
	rr = do(t, router, http.MethodGet, "/habits?username=bob", nil)
	habits = []models.Habit{}
	decodeResponse(t, rr, &habits)
	assert.Equal(t, 0, len(habits))

	// Missing title is rejected before any write
	rr = do(t, router, http.MethodPost, "/habits", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Deletion by id; a second attempt is a 404
	rr = do(t, router, http.MethodDelete, "/habits/"+created.Habit.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, router, http.MethodDelete, "/habits/"+created.Habit.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListHabitsRequiresUsername(t *testing.T) {
	router := newTestRouter(t)
	rr := do(t, router, http.MethodGet, "/habits", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAffirmations(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/affirmations", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	list := []models.Affirmation{}
	decodeResponse(t, rr, &list)
	assert.Equal(t, 0, len(list), "the catalog is seeded at process start, not on read")

	rr = do(t, router, http.MethodPost, "/affirmations", map[string]string{"text": "Keep going."})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = do(t, router, http.MethodPost, "/affirmations", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, router, http.MethodGet, "/affirmations", nil)
	list = []models.Affirmation{}
	decodeResponse(t, rr, &list)
	assert.Equal(t, 1, len(list))
	assert.Equal(t, "Keep going.", list[0].Text)
}

func TestWaterSettingUpsert(t *testing.T) {
	router := newTestRouter(t)

	// Nothing stored yet
	rr := do(t, router, http.MethodGet, "/water?username=alice", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Constraint violations fail fast
	rr = do(t, router, http.MethodPost, "/water", models.WaterIntakeSetting{
		Username: "alice", BottleName: "Flask", BottleOz: 0, DailyGoal: 96,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// First write creates
	rr = do(t, router, http.MethodPost, "/water", models.WaterIntakeSetting{
		Username: "alice", BottleName: "Flask", BottleOz: 32, DailyGoal: 96,
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	// Second write replaces in place
	rr = do(t, router, http.MethodPost, "/water", models.WaterIntakeSetting{
		Username: "alice", BottleName: "Jug", BottleOz: 64, DailyGoal: 128, CurrentOz: 12,
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, router, http.MethodGet, "/water?username=alice", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var setting models.WaterIntakeSetting
	decodeResponse(t, rr, &setting)
	assert.Equal(t, "Jug", setting.BottleName)
	assert.Equal(t, 64, setting.BottleOz)
	assert.Equal(t, 12, setting.CurrentOz)
	assert.NotEmpty(t, setting.ID)
}

func TestExerciseSeedingIsIdempotent(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/exercises?username=fresh", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	exercises := []models.Exercise{}
	decodeResponse(t, rr, &exercises)
	assert.Equal(t, 17, len(exercises))

	// Second fetch sees the same 17, not 34
	rr = do(t, router, http.MethodGet, "/exercises?username=fresh", nil)
	exercises = []models.Exercise{}
	decodeResponse(t, rr, &exercises)
	assert.Equal(t, 17, len(exercises))
}

func TestCreateCardioExerciseForcesCompoundOff(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/exercises", map[string]interface{}{
		"username": "bob", "name": "Curl", "category": "Cardio", "compound": true,
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	var created struct {
		Exercise models.Exercise `json:"exercise"`
	}
	decodeResponse(t, rr, &created)
	assert.False(t, created.Exercise.Compound)
	assert.True(t, created.Exercise.CreatedByUser)
}

func TestUpdateExercise(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/exercises", map[string]interface{}{
		"username": "bob", "name": "Row", "category": "Strength", "compound": true,
	})
	assert.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		Exercise models.Exercise `json:"exercise"`
	}
	decodeResponse(t, rr, &created)
	id := created.Exercise.ID

	// Empty patch is rejected before the store is touched
	rr = do(t, router, http.MethodPut, "/exercises/"+id, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Null fields count as absent
	rr = do(t, router, http.MethodPut, "/exercises/"+id, map[string]interface{}{"name": nil})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// The record is unchanged after the rejected patches
	rr = do(t, router, http.MethodGet, "/exercises?username=bob", nil)
	exercises := []models.Exercise{}
	decodeResponse(t, rr, &exercises)
	for _, ex := range exercises {
		if ex.ID == id {
			assert.Equal(t, "Row", ex.Name)
			assert.True(t, ex.Compound)
		}
	}

	// Switching to cardio clears compound even though the patch asserts it
	rr = do(t, router, http.MethodPut, "/exercises/"+id, map[string]interface{}{
		"category": "Cardio", "compound": true,
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	var updated struct {
		Exercise models.Exercise `json:"exercise"`
	}
	decodeResponse(t, rr, &updated)
	assert.Equal(t, models.CategoryCardio, updated.Exercise.Category)
	assert.False(t, updated.Exercise.Compound)

	// Unknown id is a 404
	rr = do(t, router, http.MethodPut, "/exercises/nope", map[string]interface{}{"name": "X"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Invalid category on update is rejected
	rr = do(t, router, http.MethodPut, "/exercises/"+id, map[string]interface{}{"category": "Mobility"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteExercise(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/exercises", map[string]interface{}{
		"username": "bob", "name": "Row", "category": "Strength",
	})
	var created struct {
		Exercise models.Exercise `json:"exercise"`
	}
	decodeResponse(t, rr, &created)

	rr = do(t, router, http.MethodDelete, "/exercises/"+created.Exercise.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, router, http.MethodDelete, "/exercises/"+created.Exercise.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestExamLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Score and done cannot arrive on create
	rr := do(t, router, http.MethodPost, "/exams", map[string]interface{}{
		"username": "alice", "course": "CS101", "date": "2025-12-01",
		"planned_hours": 10, "score": 100, "done": true,
	})
	assert.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		Exam models.Exam `json:"exam"`
	}
	decodeResponse(t, rr, &created)
	assert.Equal(t, float64(0), created.Exam.Score)
	assert.False(t, created.Exam.Done)

	// They arrive through a partial update
	rr = do(t, router, http.MethodPut, "/exams/"+created.Exam.ID, map[string]interface{}{
		"score": 92.5, "done": true,
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	var updated struct {
		Exam models.Exam `json:"exam"`
	}
	decodeResponse(t, rr, &updated)
	assert.Equal(t, 92.5, updated.Exam.Score)
	assert.True(t, updated.Exam.Done)
	assert.Equal(t, "CS101", updated.Exam.Course, "untouched fields survive")

	rr = do(t, router, http.MethodPut, "/exams/"+created.Exam.ID, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, router, http.MethodPut, "/exams/nope", map[string]interface{}{"done": true})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, router, http.MethodGet, "/exams?username=alice", nil)
	exams := []models.Exam{}
	decodeResponse(t, rr, &exams)
	assert.Equal(t, 1, len(exams))
}

func TestAssignmentLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/assignments", map[string]interface{}{
		"username": "alice", "title": "HW1", "course": "CS101", "dueDate": "2025-12-01",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		Assignment models.Assignment `json:"assignment"`
	}
	decodeResponse(t, rr, &created)
	assert.Equal(t, models.DefaultStatus, created.Assignment.Status)
	assert.Equal(t, models.DefaultPriority, created.Assignment.Priority)
	assert.Equal(t, models.DefaultType, created.Assignment.Type)

	rr = do(t, router, http.MethodPut, "/assignments/"+created.Assignment.ID, map[string]interface{}{
		"status": "Done", "points": 95,
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	var updated struct {
		Assignment models.Assignment `json:"assignment"`
	}
	decodeResponse(t, rr, &updated)
	assert.Equal(t, "Done", updated.Assignment.Status)
	assert.Equal(t, 95, updated.Assignment.Points)

	rr = do(t, router, http.MethodDelete, "/assignments/"+created.Assignment.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, router, http.MethodDelete, "/assignments/"+created.Assignment.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCourses(t *testing.T) {
	router := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/courses", models.Course{
		Code: "CS101", Name: "Intro to CS", Professor: "Knuth",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = do(t, router, http.MethodGet, "/courses", nil)
	courses := []models.Course{}
	decodeResponse(t, rr, &courses)
	assert.Equal(t, 1, len(courses))

	rr = do(t, router, http.MethodGet, "/courses/CS101", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var course models.Course
	decodeResponse(t, rr, &course)
	assert.Equal(t, "Intro to CS", course.Name)

	rr = do(t, router, http.MethodGet, "/courses/CS999", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAdminClearEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 3; i++ {
		do(t, router, http.MethodPost, "/assignments", map[string]interface{}{
			"username": "alice", "title": fmt.Sprintf("HW%d", i), "course": "CS101", "dueDate": "2025-12-01",
		})
	}
	do(t, router, http.MethodPost, "/courses", models.Course{Code: "CS101", Name: "Intro to CS", Professor: "Knuth"})

	rr := do(t, router, http.MethodDelete, "/admin/clear-assignments", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var cleared struct {
		Deleted int64 `json:"deleted"`
	}
	decodeResponse(t, rr, &cleared)
	assert.Equal(t, int64(3), cleared.Deleted)

	rr = do(t, router, http.MethodGet, "/assignments?username=alice", nil)
	assignments := []models.Assignment{}
	decodeResponse(t, rr, &assignments)
	assert.Equal(t, 0, len(assignments))

	rr = do(t, router, http.MethodDelete, "/admin/clear-courses", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, router, http.MethodGet, "/courses", nil)
	courses := []models.Course{}
	decodeResponse(t, rr, &courses)
	assert.Equal(t, 0, len(courses))
}
