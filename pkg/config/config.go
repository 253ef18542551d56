package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	JWTSecret               string
	FirebaseCredentialsPath string
	AvatarBucket            string
	PostImageBucket         string
	LogLevel                string
}

// Load reads the configuration from the environment. The .env file, when
// present, is loaded first so its values are visible to every env read,
// including the store connection strings read later by InitDB.
func Load() *Config {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		AvatarBucket:            getEnv("AVATAR_BUCKET", "pulse-avatars"),
		PostImageBucket:         getEnv("POST_IMAGE_BUCKET", "pulse-posts"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
