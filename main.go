package main

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"

	"github.com/tesabel/mobileAppDevTeam25/handlers"
	appclock "github.com/tesabel/mobileAppDevTeam25/internal/clock"
	"github.com/tesabel/mobileAppDevTeam25/internal/storage/firestorestore"
	"github.com/tesabel/mobileAppDevTeam25/middleware"
	"github.com/tesabel/mobileAppDevTeam25/services"

	_ "net/http/pprof"
)

var (
	firestoreClient *firestore.Client
	authClient      *firebaseauth.Client
	userService     *services.UserService
	habitService    *services.HabitService
	sessionService  *services.SessionService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	app, err := newFirebaseApp(ctx)
	if err != nil {
		log.Fatal("Failed to initialize Firebase app:", err)
	}

	authClient, err = app.Auth(ctx)
	if err != nil {
		log.Fatal("Failed to create Firebase auth client:", err)
	}

	firestoreClient, err = app.Firestore(ctx)
	if err != nil {
		log.Fatal("Failed to create Firestore client:", err)
	}
	log.Println("Successfully connected to Firestore")

	clk := appclock.FromEnv()
	store := firestorestore.New(firestoreClient)

	userService = services.NewUserService(store, clk)
	habitService = services.NewHabitService(store, clk)
	sessionService = services.NewSessionService(store, clk, habitService)

	middleware.InitPrometheus()
}

// newFirebaseApp initializes Firebase from the base64-encoded
// FIREBASE_SERVICE_ACCOUNT_JSON environment variable, falling back to a
// local service account key file.
func newFirebaseApp(ctx context.Context) (*firebase.App, error) {
	var opt option.ClientOption

	if encoded := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); encoded != "" {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			log.Fatal("Failed to decode FIREBASE_SERVICE_ACCOUNT_JSON:", err)
		}
		opt = option.WithCredentialsJSON(decoded)
		log.Println("Firebase: initializing from FIREBASE_SERVICE_ACCOUNT_JSON environment variable")
	} else {
		opt = option.WithCredentialsFile("./serviceAccountKey.json")
		log.Println("Firebase: initializing from local service account key file")
	}

	return firebase.NewApp(ctx, nil, opt)
}

func main() {
	defer func() {
		log.Println("Closing Firestore client...")
		firestoreClient.Close()
	}()

	userHandler := handlers.NewUserHandler(userService)
	habitHandler := handlers.NewHabitHandler(habitService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	docsHandler := handlers.NewDocsHandler()

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "doordonot-api"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/privacy-policy", docsHandler.ServePrivacyPolicy).Methods("GET")
	api.HandleFunc("/terms-of-service", docsHandler.ServeTermsOfService).Methods("GET")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.FirebaseAuthMiddleware(authClient))

	protected.HandleFunc("/user/register", userHandler.Register).Methods("POST")
	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/update-profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/delete-account", userHandler.DeleteAccount).Methods("DELETE")

	protected.HandleFunc("/session/start", sessionHandler.StartSession).Methods("POST")

	protected.HandleFunc("/habits", habitHandler.CreateHabit).Methods("POST")
	protected.HandleFunc("/habits", habitHandler.GetHabits).Methods("GET")
	protected.HandleFunc("/habits/calendar", habitHandler.GetHabitsForDate).Methods("GET")
	protected.HandleFunc("/habits/{habitId}", habitHandler.DeleteHabit).Methods("DELETE")
	protected.HandleFunc("/habits/{habitId}/type", habitHandler.UpdateHabitType).Methods("PUT")
	protected.HandleFunc("/habits/{habitId}/daily-status", habitHandler.GetDailyStatuses).Methods("GET")
	protected.HandleFunc("/habits/{habitId}/daily-status/{date}", habitHandler.SetChecked).Methods("PUT")
	protected.HandleFunc("/habits/{habitId}/daily-status/{date}/toggle", habitHandler.ToggleChecked).Methods("POST")

	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
