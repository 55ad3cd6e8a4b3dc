package main

import (
	"log"
	"net/http"
	"os"
	"ride-compare-service/internal/adapters/cache"
	"ride-compare-service/internal/adapters/fare"
	"ride-compare-service/internal/adapters/geocode"
	"ride-compare-service/internal/adapters/repositories"
	"ride-compare-service/internal/adapters/session"
	"ride-compare-service/internal/api"
	"ride-compare-service/internal/auth"
	"ride-compare-service/internal/config"
	"ride-compare-service/internal/platform/db"
	"ride-compare-service/internal/services"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Nominatim, Yango, Redis, Postgres) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	biasCity := config.Get("BIAS_CITY", "Islamabad")

	nominatimURL := config.Get("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	userAgent := config.Get("GEOCODER_USER_AGENT", "Tapley-Ride-App/1.0")

	yangoURL := config.Get("YANGO_BASE_URL", "https://api.yango.yandex.com")
	taxiInfoURL := config.Get("TAXI_INFO_BASE_URL", "https://taxi-routeinfo.taxi.yandex.net")
	clientID := os.Getenv("PROVIDER_CLID")
	apiKey := os.Getenv("PROVIDER_API_KEY")
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(apiKey) == "" {
		// Without credentials every live call fails and quotes degrade to
		// mock estimates, which is still a working comparison flow.
		log.Println("PROVIDER_CLID/PROVIDER_API_KEY not set; serving approximate pricing only")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	if err := repositories.InitSchema(pg); err != nil {
		log.Fatal(err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.Get("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer redisClient.Close()

	// Geocode results are cached so repeated suggestion queries skip Nominatim.
	geocodeCache := cache.NewRedisGeocodeCache(redisClient, config.GetDuration("GEOCODE_CACHE_TTL", 24*time.Hour))
	geocoder := geocode.NewNominatimClient(nominatimURL, userAgent, geocodeCache)

	primary := fare.NewYangoEstimateProvider(yangoURL, clientID, apiKey, userAgent)
	fallback := fare.NewTaxiRouteInfoProvider(taxiInfoURL, clientID, apiKey, userAgent)

	resolver := services.NewResolver(geocoder, biasCity)
	estimator := services.NewEstimator(primary, fallback)
	profiles := session.NewRedisProfileStore(redisClient, config.GetDuration("PROFILE_TTL", 30*24*time.Hour))
	workflow := services.NewWorkflow(resolver, estimator, profiles)

	tokens := auth.NewTokenManager(
		config.Get("JWT_SECRET", "dev-secret-change-me"),
		config.GetDuration("JWT_TTL", 24*time.Hour),
	)
	accounts := services.NewAccounts(repositories.NewPgUserRepository(pg), profiles, tokens)

	router := api.NewRouter(resolver, workflow, accounts)

	// Write timeout covers the worst case of a full provider fallback ladder
	// (primary timeout plus fallback timeout plus retries).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
