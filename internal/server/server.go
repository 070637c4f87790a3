package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	fb "firebase.google.com/go/v4"
	"github.com/PramodHashantha/GPA-Calculator/internal/firebase"
	"github.com/PramodHashantha/GPA-Calculator/internal/server/handlers"
	"github.com/PramodHashantha/GPA-Calculator/internal/server/middleware"
	"github.com/PramodHashantha/GPA-Calculator/internal/server/ratelimit"
	"github.com/patrickmn/go-cache"
	"google.golang.org/api/option"
)

const (
	claimsCacheTTL = 5 * time.Minute

	defaultRateLimit     = 100
	defaultWindowSeconds = 60
)

type Server struct {
	handlers   *handlers.Handler
	middleware *middleware.Manager
	port       int
}

func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	sa := option.WithCredentialsFile(os.Getenv("FIREBASE_CONFIG"))
	app, err := fb.NewApp(context.Background(), nil, sa)
	if err != nil {
		log.Fatalf("error initializing firebase app: %v\n", err)
	}

	db, err := firebase.NewFirestore(context.Background(), app)
	if err != nil {
		log.Fatalf("error initializing firestore: %v\n", err)
	}

	reports, err := firebase.NewReportStore(context.Background(), app)
	if err != nil {
		log.Fatalf("error initializing report storage: %v\n", err)
	}

	limiter := ratelimit.NewLimiter(rateLimitFromEnv())
	limiter.StartCleanup(time.Minute)

	newServer := &Server{
		handlers: handlers.New(db, reports),
		middleware: middleware.NewManager(
			db,
			cache.New(claimsCacheTTL, 10*time.Minute),
			limiter,
		),
		port: port,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", newServer.port),
		Handler:      newServer.RegisterRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// rateLimitFromEnv reads the per-user rate limit configuration, falling back
// to 100 requests per minute.
func rateLimitFromEnv() (int, time.Duration) {
	limit, _ := strconv.Atoi(os.Getenv("RATE_LIMIT"))
	if limit <= 0 {
		limit = defaultRateLimit
	}

	windowSeconds, _ := strconv.Atoi(os.Getenv("RATE_WINDOW_SECONDS"))
	if windowSeconds <= 0 {
		windowSeconds = defaultWindowSeconds
	}

	return limit, time.Duration(windowSeconds) * time.Second
}
