package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
	APIKeyEnv      = "GROQ_API_KEY"
)

type Config struct {
	APIKey           string
	BaseURL          string
	Model            string
	PortfolioPath    string
	ResumePath       string
	ProfileImagePath string
	HTTPAddr         string
	RevealDelay      time.Duration
	SessionTTL       time.Duration
	ChatRatePerMin   int
	TelegramToken    string
	LogLevel         string

	// AllowedChatIDs limits the Telegram bot to these chats. Empty means
	// every chat may talk to it.
	AllowedChatIDs []int64
}

// fileConfig mirrors Config for the optional TOML file. Unset keys keep the
// values coming from the environment.
type fileConfig struct {
	APIKey           string  `toml:"api_key"`
	BaseURL          string  `toml:"base_url"`
	Model            string  `toml:"model"`
	PortfolioPath    string  `toml:"portfolio_path"`
	ResumePath       string  `toml:"resume_path"`
	ProfileImagePath string  `toml:"profile_image_path"`
	HTTPAddr         string  `toml:"http_addr"`
	RevealDelayMS    *int    `toml:"reveal_delay_ms"`
	SessionTTLMin    *int    `toml:"session_ttl_minutes"`
	ChatRatePerMin   *int    `toml:"chat_rate_per_minute"`
	TelegramToken    string  `toml:"telegram_token"`
	LogLevel         string  `toml:"log_level"`
	AllowedChatIDs   []int64 `toml:"allowed_chat_ids"`
}

// Load builds the configuration from the .env file at envPath, the process
// environment and, when tomlPath is set, a TOML file. A missing API key is
// not an error: turns report it to the visitor instead.
func Load(envPath, tomlPath string) (Config, error) {
	if envPath != "" {
		if err := loadDotEnv(envPath); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", envPath).Msg("could not read .env")
		}
	}

	cfg := Config{
		APIKey:           strings.TrimSpace(os.Getenv(APIKeyEnv)),
		BaseURL:          getenvDefault("COMPLETION_BASE_URL", DefaultBaseURL),
		Model:            getenvDefault("COMPLETION_MODEL", DefaultModel),
		PortfolioPath:    os.Getenv("PORTFOLIO_PATH"),
		ResumePath:       getenvDefault("RESUME_PATH", "assets/resume.pdf"),
		ProfileImagePath: getenvDefault("PROFILE_IMAGE_PATH", "assets/profile.jpg"),
		HTTPAddr:         getenvDefault("HTTP_ADDR", ":8080"),
		RevealDelay:      time.Duration(getenvIntDefault("REVEAL_DELAY_MS", 35)) * time.Millisecond,
		SessionTTL:       time.Duration(getenvIntDefault("SESSION_TTL_MINUTES", 120)) * time.Minute,
		ChatRatePerMin:   getenvIntDefault("CHAT_RATE_PER_MINUTE", 20),
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		LogLevel:         getenvDefault("LOG_LEVEL", "info"),
		AllowedChatIDs:   parseIDs(os.Getenv("ALLOWED_TELEGRAM_CHAT_IDS")),
	}

	if tomlPath != "" {
		if err := applyFile(&cfg, tomlPath); err != nil {
			return cfg, err
		}
	}

	if cfg.RevealDelay < 0 {
		return cfg, errors.New("reveal delay must not be negative")
	}
	if cfg.SessionTTL <= 0 {
		return cfg, errors.New("session ttl must be positive")
	}
	return cfg, nil
}

func (c Config) HasAPIKey() bool {
	return c.APIKey != ""
}

func applyFile(cfg *Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return errors.Wrapf(err, "decode config %s", path)
	}

	setString(&cfg.APIKey, fc.APIKey)
	setString(&cfg.BaseURL, fc.BaseURL)
	setString(&cfg.Model, fc.Model)
	setString(&cfg.PortfolioPath, fc.PortfolioPath)
	setString(&cfg.ResumePath, fc.ResumePath)
	setString(&cfg.ProfileImagePath, fc.ProfileImagePath)
	setString(&cfg.HTTPAddr, fc.HTTPAddr)
	setString(&cfg.TelegramToken, fc.TelegramToken)
	setString(&cfg.LogLevel, fc.LogLevel)
	if fc.RevealDelayMS != nil {
		cfg.RevealDelay = time.Duration(*fc.RevealDelayMS) * time.Millisecond
	}
	if fc.SessionTTLMin != nil {
		cfg.SessionTTL = time.Duration(*fc.SessionTTLMin) * time.Minute
	}
	if fc.ChatRatePerMin != nil {
		cfg.ChatRatePerMin = *fc.ChatRatePerMin
	}
	if len(fc.AllowedChatIDs) > 0 {
		cfg.AllowedChatIDs = fc.AllowedChatIDs
	}
	return nil
}

// ChatAllowed reports whether the Telegram chat may use the bot.
func (c Config) ChatAllowed(chatID int64) bool {
	if len(c.AllowedChatIDs) == 0 {
		return true
	}
	for _, id := range c.AllowedChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}

func parseIDs(raw string) []int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			log.Warn().Err(err).Str("id", p).Msg("skipping chat id")
			continue
		}
		ids = append(ids, v)
	}
	return ids
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Int("default", def).Msg("invalid int, using default")
		return def
	}
	return n
}

func loadDotEnv(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, val)
		}
	}
	return scanner.Err()
}

func parseEnvLine(line string) (string, string, bool) {
	if strings.HasPrefix(line, "export ") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key := strings.TrimSpace(parts[0])
	val := strings.TrimSpace(parts[1])
	val = strings.Trim(val, `"'`)
	if key == "" {
		return "", "", false
	}
	return key, val, true
}
