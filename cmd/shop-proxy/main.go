// Command shop-proxy exposes the shop edge client over HTTP, fronting
// the edge API with the layered cache and publishing Prometheus
// metrics.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/veloshop/shop-edge-client/pkg/cache"
	"github.com/veloshop/shop-edge-client/pkg/client"
	"github.com/veloshop/shop-edge-client/pkg/logging"
)

var (
	errMissingID = errors.New("missing product id")
	errNotFound  = errors.New("product not found")
)

func main() {
	logger := logging.Setup(logging.FromEnv())

	workerURL := os.Getenv("WORKER_URL")
	if workerURL == "" {
		logger.Fatal().Msg("WORKER_URL is required")
	}

	cfg := client.DefaultConfig(workerURL)
	cfg.FallbackURL = os.Getenv("FALLBACK_URL")
	cfg.APIKey = os.Getenv("API_KEY")

	// Optional durable tier: wired only when a Redis address is given.
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisURL})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal().Err(err).Str("redis_url", redisURL).Msg("Failed to connect to Redis")
		}
		cfg.Store = cache.NewRedisStore(redisClient)
		logger.Info().Str("redis_url", redisURL).Msg("Durable cache tier enabled")
	}

	shopClient, err := client.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create shop client")
	}
	defer shopClient.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	registerHandlers(mux, shopClient)

	addr := ":" + getEnv("PORT", "8080")
	logger.Info().
		Str("addr", addr).
		Str("worker_url", workerURL).
		Msg("Starting shop proxy")

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

// registerHandlers mounts the read API onto the mux.
func registerHandlers(mux *http.ServeMux, shopClient *client.Client) {
	mux.HandleFunc("/products", productsHandler(shopClient))
	mux.HandleFunc("/products/", productHandler(shopClient))
	mux.HandleFunc("/categories", categoriesHandler(shopClient))
	mux.HandleFunc("/settings", settingsHandler(shopClient))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func productsHandler(shopClient *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		query := client.ProductQuery{
			Page:              atoiDefault(q.Get("page"), 0),
			Limit:             atoiDefault(q.Get("limit"), 0),
			Category:          q.Get("category"),
			Search:            q.Get("search"),
			IncludeOutOfStock: q.Get("include_out_of_stock") != "",
		}

		products, err := shopClient.Products(r.Context(), query)
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, products)
	}
}

func productHandler(shopClient *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/products/")
		if id == "" {
			writeError(w, http.StatusBadRequest, errMissingID)
			return
		}

		product, err := shopClient.ProductByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		if product == nil {
			writeError(w, http.StatusNotFound, errNotFound)
			return
		}
		writeJSON(w, product)
	}
}

func categoriesHandler(shopClient *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := shopClient.Categories(r.Context())
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, categories)
	}
}

func settingsHandler(shopClient *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := shopClient.Settings(r.Context())
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, settings)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
