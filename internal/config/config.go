package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Ai        AIConfig
	Auth      AuthConfig
	Retrieval RetrievalConfig
	Keys      APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini", "ollama" or "jina"
	OllamaBaseURL     string
	OllamaEmbedModel  string
	LLMProvider       string // "ollama" or "gemini"
	LLMModel          string // e.g. "gemma3n-e4b-q4", "gemini-pro"
	GeminiAPIURL      string // direct backend endpoint
}

type AuthConfig struct {
	SessionSecret      string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FirebaseAPIKey     string // Identity Toolkit key for revocation calls
}

type RetrievalConfig struct {
	ChunkSize int
	TopK      int
}

type APIKeys struct {
	GoogleGemini   string
	Jina           string
	Booking        string
	Skyscanner     string
	OpenWeatherMap string
	Eventbrite     string
	TripAdvisor    string
	IngestedTopic  string // Retrieval ingestion topic
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "gemma3n-e4b-q4"),
			GeminiAPIURL:      getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"),
		},
		Auth: AuthConfig{
			SessionSecret:      getEnv("SESSION_SECRET", ""),
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
			FirebaseAPIKey:     getEnv("FIREBASE_API_KEY", ""),
		},
		Retrieval: RetrievalConfig{
			ChunkSize: getEnvAsInt("RETRIEVAL_CHUNK_SIZE", 200),
			TopK:      getEnvAsInt("RETRIEVAL_TOP_K", 5),
		},
		Keys: APIKeys{
			GoogleGemini:   getEnv("GEMINI_API_KEY", ""),
			Jina:           getEnv("JINA_API_KEY", ""),
			Booking:        getEnv("BOOKING_API_KEY", ""),
			Skyscanner:     getEnv("SKYSCANNER_API_KEY", ""),
			OpenWeatherMap: getEnv("OPENWEATHERMAP_API_KEY", ""),
			Eventbrite:     getEnv("EVENTBRITE_API_KEY", ""),
			TripAdvisor:    getEnv("TRIPADVISOR_API_KEY", ""),
			IngestedTopic:  getEnv("RETRIEVAL_INGESTED_TOPIC_NAME", "RETRIEVAL_INGESTED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
