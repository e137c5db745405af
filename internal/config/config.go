package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabaseURL     string
	LogLevel        string
	Debug           bool
	ServiceName     string
	Environment     string
	Hostname        string
	ServerPort      string
	WorkerCount     int
	BatchSize       int
	GeminiAPIKeys   []string
	ModelName       string
	MaxOutputTokens int
	Temperature     float32
}

func LoadConfig() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	// The gateway fails closed without a provider credential: there is no
	// stubbed model in production mode.
	var geminiAPIKeys []string
	for _, key := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		if key = strings.TrimSpace(key); key != "" {
			geminiAPIKeys = append(geminiAPIKeys, key)
		}
	}
	if len(geminiAPIKeys) == 0 {
		return nil, errors.New("GEMINI_API_KEYS is required")
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = os.Getenv("PORT")
	}
	if serverPort == "" {
		serverPort = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "widget-relay"
	}

	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "widget-relay"
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	modelName := os.Getenv("MODEL_NAME")
	if modelName == "" {
		modelName = "gemini-2.0-flash-lite"
	}

	// Bounded generation: the output cap is a cost and latency control.
	maxOutputTokens := 150
	if mt := os.Getenv("MAX_OUTPUT_TOKENS"); mt != "" {
		if parsed, err := strconv.Atoi(mt); err == nil && parsed > 0 {
			maxOutputTokens = parsed
		}
	}

	workerCount := 10 // default value
	if wc := os.Getenv("WORKER_COUNT"); wc != "" {
		if parsed, err := strconv.Atoi(wc); err == nil {
			workerCount = parsed
		}
	}

	batchSize := 100 // default value
	if bs := os.Getenv("BATCH_SIZE"); bs != "" {
		if parsed, err := strconv.Atoi(bs); err == nil {
			batchSize = parsed
		}
	}

	return &Config{
		DatabaseURL:     databaseURL,
		LogLevel:        logLevel,
		Debug:           os.Getenv("DEBUG") == "true",
		ServiceName:     serviceName,
		Environment:     environment,
		Hostname:        hostname,
		ServerPort:      serverPort,
		WorkerCount:     workerCount,
		BatchSize:       batchSize,
		GeminiAPIKeys:   geminiAPIKeys,
		ModelName:       modelName,
		MaxOutputTokens: maxOutputTokens,
		Temperature:     0.7,
	}, nil
}
