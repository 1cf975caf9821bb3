package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string
	Env         string
	AppBaseURL  string

	// Auth
	JWTSecret string

	// LLM
	LLMProvider string
	OpenAIKey   string
	GroqKey     string
	LLMModel    string

	// Vector search
	VectorProvider string
	QdrantURL      string
	QdrantAPIKey   string

	// Uploads
	UploadProvider string
	UploadDir      string
	S3Bucket       string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	CloudinaryURL  string

	// Checkout
	CheckoutMode       string
	CheckoutAPIKey     string
	CheckoutBaseURL    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	// Email
	EmailProvider string
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string

	// Widget
	WidgetScriptURL string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        os.Getenv("PORT"),
		Env:         os.Getenv("ENV"),
		AppBaseURL:  os.Getenv("APP_BASE_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		LLMProvider: os.Getenv("LLM_PROVIDER"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		GroqKey:     os.Getenv("GROQ_API_KEY"),
		LLMModel:    os.Getenv("LLM_MODEL"),

		VectorProvider: os.Getenv("VECTOR_PROVIDER"),
		QdrantURL:      os.Getenv("QDRANT_URL"),
		QdrantAPIKey:   os.Getenv("QDRANT_API_KEY"),

		UploadProvider: os.Getenv("UPLOAD_PROVIDER"),
		UploadDir:      os.Getenv("UPLOAD_DIR"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       os.Getenv("S3_REGION"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),

		CheckoutMode:       os.Getenv("CHECKOUT_MODE"),
		CheckoutAPIKey:     os.Getenv("CHECKOUT_API_KEY"),
		CheckoutBaseURL:    os.Getenv("CHECKOUT_BASE_URL"),
		CheckoutSuccessURL: os.Getenv("CHECKOUT_SUCCESS_URL"),
		CheckoutCancelURL:  os.Getenv("CHECKOUT_CANCEL_URL"),

		EmailProvider: os.Getenv("EMAIL_PROVIDER"),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		EmailFrom:     os.Getenv("EMAIL_FROM"),
		EmailFromName: os.Getenv("EMAIL_FROM_NAME"),

		WidgetScriptURL: os.Getenv("WIDGET_SCRIPT_URL"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.AppBaseURL == "" {
		cfg.AppBaseURL = "http://localhost:" + cfg.Port
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "openai"
	}
	if cfg.UploadProvider == "" {
		cfg.UploadProvider = "local"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}
	if cfg.CheckoutMode == "" {
		cfg.CheckoutMode = "sandbox"
	}
	if cfg.WidgetScriptURL == "" {
		cfg.WidgetScriptURL = cfg.AppBaseURL + "/widget.js"
	}

	return cfg
}
