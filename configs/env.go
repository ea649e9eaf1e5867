package configs

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at process start.
// Nothing else in the codebase reads os.Getenv after Load has run.
type Config struct {
	MongoURI          string
	DBName            string
	Port              string
	BaseURL           string
	JWTSecret         string
	RazorpayKeyID     string
	RazorpayKeySecret string
	MailgunDomain     string
	MailgunAPIKey     string
	MailFrom          string
	UploadDir         string
}

var (
	cfg      Config
	loadOnce sync.Once
)

// Load reads .env (if present) and the environment exactly once.
func Load() Config {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using environment")
		}
		cfg = Config{
			MongoURI:          os.Getenv("MONGOURI"),
			DBName:            getenv("DB_NAME", "medicure"),
			Port:              getenv("PORT", "4000"),
			BaseURL:           getenv("BASE_URL", "http://localhost:3000"),
			JWTSecret:         os.Getenv("JWT_SECRET"),
			RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
			RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
			MailgunDomain:     os.Getenv("MAILGUN_DOMAIN"),
			MailgunAPIKey:     os.Getenv("MAILGUN_API_KEY"),
			MailFrom:          getenv("MAIL_FROM", "Medicure <no-reply@medicure.example>"),
			UploadDir:         getenv("UPLOAD_DIR", "uploads"),
		}
		if cfg.MongoURI == "" {
			log.Fatal("MONGOURI is required")
		}
		if cfg.JWTSecret == "" {
			log.Fatal("JWT_SECRET is required")
		}
	})
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
