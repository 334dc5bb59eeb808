package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	DatabaseURL     string
	InternalToken   string
	CORSAllowOrigin string
	PDFFontDir      string
	AMQPURL         string
	AMQPQueue       string
}

func MustLoad() Config {
	// .env is optional, real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Printf("config: loaded .env")
	}

	return Config{
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		DatabaseURL:     mustEnv("DATABASE_URL"),
		InternalToken:   mustEnv("INTERNAL_TOKEN"),
		CORSAllowOrigin: env("CORS_ALLOW_ORIGIN", "*"),
		PDFFontDir:      env("PDF_FONT_DIR", "fonts"),
		AMQPURL:         env("AMQP_URL", ""),
		AMQPQueue:       env("AMQP_QUEUE", "invsys.billing"),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}
