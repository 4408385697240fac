package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken    string
	WebhookPublicURL string
	OpenAIKey        string
	Port             string
	DBPath           string
	DescriptionLang  string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

func Load() Config {
	// Optional .env for local runs; real deployments set the environment.
	if err := godotenv.Load(); err == nil {
		log.Println("config: loaded .env")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "9095"
	}
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "/app/data/compare.db"
	}
	lang := os.Getenv("DESCRIPTION_LANG")
	if lang == "" {
		lang = "es"
	}
	return Config{
		TelegramToken:    mustEnv("TELEGRAM_BOT_TOKEN"),
		WebhookPublicURL: mustEnv("WEBHOOK_PUBLIC_URL"),
		OpenAIKey:        mustEnv("OPENAI_API_KEY"),
		Port:             port,
		DBPath:           dbPath,
		DescriptionLang:  lang,
	}
}
