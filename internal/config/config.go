package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	ServerAddr     string
	FrontendOrigin string
	Timezone       *time.Location

	MongoURI string
	MongoDB  string

	RedisURL        string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTLSeconds int

	RateLimitConsultation int
	RateLimitInquiry      int
	RateLimitWindowSec    int

	AirtableToken   string
	AirtableBaseID  string
	AirtableTableID string

	ResendAPIKey      string
	ConsultationFrom  string
	ConsultationTo    string
	InquiryAlertEmail string

	StripeSecretKey    string
	DepositAmountCents int64
	DepositCurrency    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	TurnstileSecret string

	AdminAPIKey       string
	AdminUser         string
	AdminPasswordHash string
	JWTSecret         string
	AccessTTLMinutes  int
	RefreshTTLMinutes int
	CookieSecure      bool
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func Load() (*Config, error) {
	// Existing environment wins over .env values.
	_ = godotenv.Load()

	loc, err := time.LoadLocation(getEnv("TZ", "America/New_York"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		ServerAddr:     getEnv("SERVER_ADDR", ":8080"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		Timezone:       loc,

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017/veilandvow"),
		MongoDB:  getEnv("MONGO_DB", "veilandvow"),

		RedisURL:        getEnv("REDIS_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 120),

		RateLimitConsultation: getEnvInt("RATE_LIMIT_CONSULTATION", 5),
		RateLimitInquiry:      getEnvInt("RATE_LIMIT_INQUIRY", 5),
		RateLimitWindowSec:    getEnvInt("RATE_LIMIT_WINDOW_SEC", 60),

		AirtableToken:   getEnv("AIRTABLE_TOKEN", ""),
		AirtableBaseID:  getEnv("AIRTABLE_BASE_ID", ""),
		AirtableTableID: getEnv("AIRTABLE_TABLE_ID", ""),

		ResendAPIKey:      getEnv("RESEND_API_KEY", ""),
		ConsultationFrom:  getEnv("CONSULTATION_FROM_EMAIL", "Veil & Vow Films <studio@veilandvow.film>"),
		ConsultationTo:    getEnv("CONSULTATION_TO_EMAIL", ""),
		InquiryAlertEmail: getEnv("INQUIRY_ALERT_EMAIL", ""),

		StripeSecretKey:    getEnv("STRIPE_SECRET_KEY", ""),
		DepositAmountCents: getEnvInt64("DEPOSIT_AMOUNT_CENTS", 100000),
		DepositCurrency:    getEnv("DEPOSIT_CURRENCY", "usd"),
		CheckoutSuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/booking/confirmed"),
		CheckoutCancelURL:  getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/booking"),

		TurnstileSecret: getEnv("TURNSTILE_SECRET", ""),

		AdminAPIKey:       getEnv("ADMIN_API_KEY", ""),
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AccessTTLMinutes:  getEnvInt("ACCESS_TTL_MINUTES", 15),
		RefreshTTLMinutes: getEnvInt("REFRESH_TTL_MINUTES", 43200),
		CookieSecure:      getEnv("COOKIE_SECURE", "false") == "true",
	}

	return cfg, nil
}
