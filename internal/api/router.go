package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DavideLicci/MindGarden/internal/api/recovery"
	"github.com/DavideLicci/MindGarden/internal/api/respond"
	"github.com/DavideLicci/MindGarden/internal/auth"
	"github.com/DavideLicci/MindGarden/internal/services"
	"github.com/DavideLicci/MindGarden/internal/uploads"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Authorizer auth.Authorizer
	Health     HealthReporter
	Signer     *uploads.Signer

	Users     *services.UserService
	CheckIns  *services.CheckInService
	Gardens   *services.GardenService
	Insights  *services.InsightService
	Chat      *services.ChatService
	Analytics *services.AnalyticsService
	Settings  *services.SettingsService
	Jobs      *services.JobService
}

// NewRouter creates the HTTP router with all API routes.
func NewRouter(d Deps) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)
	router.Use(metricsMiddleware)

	healthHandler := NewHealthHandler(d.Health)
	authHandler := NewAuthHandler(d.Users)
	checkInHandler := NewCheckInHandler(d.CheckIns)
	gardenHandler := NewGardenHandler(d.Gardens)
	insightHandler := NewInsightHandler(d.Insights)
	chatHandler := NewChatHandler(d.Chat)
	analyticsHandler := NewAnalyticsHandler(d.Analytics)
	settingsHandler := NewSettingsHandler(d.Settings)
	jobHandler := NewJobHandler(d.Jobs)
	uploadHandler := NewUploadHandler(d.Signer)

	// Public endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.Middleware(d.Authorizer))

	// Check-ins
	api.HandleFunc("/checkins", checkInHandler.Create).Methods("POST")
	api.HandleFunc("/checkins", checkInHandler.List).Methods("GET")
	api.HandleFunc("/checkins/{checkinId:[0-9]+}", checkInHandler.Get).Methods("GET")
	api.HandleFunc("/checkins/{checkinId:[0-9]+}", checkInHandler.Delete).Methods("DELETE")

	// Garden and plants
	api.HandleFunc("/gardens/me", gardenHandler.Mine).Methods("GET")
	api.HandleFunc("/plants/{plantId}", gardenHandler.GetPlant).Methods("GET")
	api.HandleFunc("/plants/{plantId}/actions", gardenHandler.Care).Methods("POST")

	// Insights and notifications
	api.HandleFunc("/insights", insightHandler.List).Methods("GET")
	api.HandleFunc("/insights/generate", insightHandler.Generate).Methods("POST")
	api.HandleFunc("/notifications", insightHandler.Notifications).Methods("GET")

	// Chatbot
	api.HandleFunc("/chatbot/conversation", chatHandler.Conversation).Methods("POST")
	api.HandleFunc("/chatbot/context", chatHandler.Context).Methods("GET")
	api.HandleFunc("/chatbot/suggestions", chatHandler.Suggestions).Methods("GET")

	// Analytics
	api.HandleFunc("/analytics/emotion-trends", analyticsHandler.EmotionTrends).Methods("GET")
	api.HandleFunc("/analytics/garden-health", analyticsHandler.GardenHealth).Methods("GET")
	api.HandleFunc("/analytics/achievements", analyticsHandler.Achievements).Methods("GET")
	api.HandleFunc("/analytics/report", analyticsHandler.Report).Methods("GET")

	// Settings
	api.HandleFunc("/settings/me", settingsHandler.Get).Methods("GET")
	api.HandleFunc("/settings/me", settingsHandler.Patch).Methods("PATCH")

	// Data export and deletion
	api.HandleFunc("/export", jobHandler.Export).Methods("POST")
	api.HandleFunc("/data", jobHandler.DeleteData).Methods("DELETE")
	api.HandleFunc("/jobs/{jobId}", jobHandler.Get).Methods("GET")

	// Uploads
	api.HandleFunc("/uploads/signed-url", uploadHandler.SignedURL).Methods("POST")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteNotFound(w, "route not found")
	})
	return router
}
