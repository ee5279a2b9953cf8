package server

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	apphandlers "trackly/server/handlers"
	"trackly/storage"
)

// recoveryMiddleware recovers from panics and provides a generic error
// message to the client.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic recovered: %s\n", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Router builds the REST routing table over the given store. Split out from
// Start so tests can drive the routes through httptest.
func Router(store storage.Store) *mux.Router {
	h := apphandlers.New(store)

	r := mux.NewRouter()

	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	r.HandleFunc("/habits", h.ListHabits).Methods(http.MethodGet)
	r.HandleFunc("/habits", h.CreateHabit).Methods(http.MethodPost)
	r.HandleFunc("/habits/{id}", h.DeleteHabit).Methods(http.MethodDelete)

	r.HandleFunc("/affirmations", h.ListAffirmations).Methods(http.MethodGet)
	r.HandleFunc("/affirmations", h.CreateAffirmation).Methods(http.MethodPost)

	r.HandleFunc("/water", h.GetWaterSetting).Methods(http.MethodGet)
	r.HandleFunc("/water", h.UpsertWaterSetting).Methods(http.MethodPost)

	r.HandleFunc("/exercises", h.ListExercises).Methods(http.MethodGet)
	r.HandleFunc("/exercises", h.CreateExercise).Methods(http.MethodPost)
	r.HandleFunc("/exercises/{id}", h.UpdateExercise).Methods(http.MethodPut)
	r.HandleFunc("/exercises/{id}", h.DeleteExercise).Methods(http.MethodDelete)

	r.HandleFunc("/exams", h.ListExams).Methods(http.MethodGet)
	r.HandleFunc("/exams", h.CreateExam).Methods(http.MethodPost)
	r.HandleFunc("/exams/{id}", h.UpdateExam).Methods(http.MethodPut)

	r.HandleFunc("/assignments", h.ListAssignments).Methods(http.MethodGet)
	r.HandleFunc("/assignments", h.CreateAssignment).Methods(http.MethodPost)
	r.HandleFunc("/assignments/{id}", h.UpdateAssignment).Methods(http.MethodPut)
	r.HandleFunc("/assignments/{id}", h.DeleteAssignment).Methods(http.MethodDelete)

	r.HandleFunc("/courses", h.ListCourses).Methods(http.MethodGet)
	r.HandleFunc("/courses", h.CreateCourse).Methods(http.MethodPost)
	r.HandleFunc("/courses/{code}", h.GetCourseByCode).Methods(http.MethodGet)

	r.HandleFunc("/admin/clear-assignments", h.ClearAssignments).Methods(http.MethodDelete)
	r.HandleFunc("/admin/clear-courses", h.ClearCourses).Methods(http.MethodDelete)

	return r
}

// Start initializes and runs the REST server on the given address. The CORS
// allow-list is fixed at startup; all methods and headers are permitted for
// the listed origins.
func Start(addr string, origins []string, store storage.Store) error {
	r := Router(store)

	// Apply the CORS middleware to the router
	corsOrigins := handlers.AllowedOrigins(origins)
	corsMethods := handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"})
	corsHeaders := handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"})
	corsRouter := handlers.CORS(corsOrigins, corsMethods, corsHeaders, handlers.AllowCredentials())(recoveryMiddleware(r))

	// Apply the logging middleware
	loggingRouter := handlers.LoggingHandler(os.Stdout, corsRouter)

	server := &http.Server{
		Handler:      loggingRouter,
		Addr:         addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return server.ListenAndServe()
}
