package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                      string
	AppPassword               string
	VerifyToken               string
	WhatsAppToken             string
	PhoneNumberID             string
	WhatsAppBusinessAccountID string
	MetaAppID                 string
	GraphVersion              string
	DatabaseURL               string
	DBPath                    string
	SupabaseURL               string
	SupabaseServiceKey        string
	StorageBucket             string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return &Config{
		Port:                      getEnv("PORT", "8080"),
		AppPassword:               getEnv("PASS", ""),
		VerifyToken:               getEnv("VERIFY_TOKEN", "bakked_verify_token"),
		WhatsAppToken:             getEnv("WHATSAPP_TOKEN", ""),
		PhoneNumberID:             getEnv("PHONE_NUMBER_ID", ""),
		WhatsAppBusinessAccountID: getEnv("WABA_ID", ""),
		MetaAppID:                 getEnv("META_APP_ID", ""),
		GraphVersion:              getEnv("GRAPH_VERSION", "v22.0"),
		DatabaseURL:               getEnv("DATABASE_URL", ""),
		DBPath:                    getEnv("DB_PATH", "./bakked.db"),
		SupabaseURL:               getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:        getEnv("SUPABASE_SERVICE_KEY", ""),
		StorageBucket:             getEnv("STORAGE_BUCKET", "whatsapp-media"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
