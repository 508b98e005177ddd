package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Rag      RagConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	UploadDir          string
	JwtSecret          string
	IngestTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	GoogleSearch string
	GoogleCx     string
}

type AIConfig struct {
	GenerationModel string
	EmbeddingModel  string
	EmbeddingDim    int
	WebGrounding    bool
}

type RagConfig struct {
	ChunkSize       int
	ChunkOverlap    int
	TopK            int
	MaxHistoryTurns int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
			JwtSecret:          getEnv("SECRET_KEY", ""),
			IngestTopic:        getEnv("INGEST_FILE_TOPIC_NAME", "INGEST_UPLOADED_FILE"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DATABASE_URL", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GEMINI_API_KEY", ""),
			GoogleSearch: getEnv("GOOGLE_API_KEY", ""),
			GoogleCx:     getEnv("GOOGLE_CX", ""),
		},
		Ai: AIConfig{
			GenerationModel: getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
			EmbeddingModel:  getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
			EmbeddingDim:    getEnvAsInt("EMBEDDING_DIM", 768),
			WebGrounding:    getEnv("GEMINI_WEB_GROUNDING", "true") == "true",
		},
		Rag: RagConfig{
			ChunkSize:       getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:    getEnvAsInt("CHUNK_OVERLAP", 100),
			TopK:            getEnvAsInt("TOP_K", 4),
			MaxHistoryTurns: getEnvAsInt("MAX_HISTORY_TURNS", 12),
		},
	}
}

// Validate rejects settings the pipeline cannot run with. Called once at
// startup; a failure here is fatal.
func (c *Config) Validate() error {
	if c.Rag.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.Rag.ChunkSize)
	}
	if c.Rag.ChunkOverlap < 0 {
		return fmt.Errorf("CHUNK_OVERLAP must not be negative, got %d", c.Rag.ChunkOverlap)
	}
	if c.Rag.ChunkOverlap >= c.Rag.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", c.Rag.ChunkOverlap, c.Rag.ChunkSize)
	}
	if c.Rag.TopK <= 0 {
		return fmt.Errorf("TOP_K must be positive, got %d", c.Rag.TopK)
	}
	if c.Ai.EmbeddingDim <= 0 {
		return fmt.Errorf("EMBEDDING_DIM must be positive, got %d", c.Ai.EmbeddingDim)
	}
	return nil
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
