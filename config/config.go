package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// TimeOfDay is one daily send slot.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

type Config struct {
	DiscordToken   string
	DiscordWebhook string

	LLMProvider    string // anthropic, openai, ollama
	AnthropicKey   string // API key (X-Api-Key header)
	AnthropicToken string // OAuth token (Authorization: Bearer header)
	OpenAIKey      string
	LLMModel       string
	OllamaBaseURL  string

	UsePregenerated  bool
	PregeneratedFile string
	MilestoneFile    string

	Location      *time.Location
	ScheduleTimes []TimeOfDay

	RunMode      string // bot, http
	Port         string
	DatabasePath string
}

func Load() (*Config, error) {
	_ = godotenv.Load() // ignore error if no .env

	loc, err := time.LoadLocation(envOr("TIMEZONE", "Asia/Taipei"))
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}

	times, err := parseScheduleTimes(envOr("SCHEDULE_TIMES", "08:00,12:00,16:00,20:00"))
	if err != nil {
		return nil, err
	}

	return &Config{
		DiscordToken:   os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordWebhook: os.Getenv("DISCORD_WEBHOOK_URL"),

		LLMProvider:    envOr("LLM_PROVIDER", "anthropic"),
		AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicToken: os.Getenv("ANTHROPIC_AUTH_TOKEN"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		LLMModel:       os.Getenv("LLM_MODEL"),
		OllamaBaseURL:  envOr("OLLAMA_BASE_URL", "http://localhost:11434/v1"),

		UsePregenerated:  envBool("USE_PREGENERATED", true),
		PregeneratedFile: envOr("PREGENERATED_FILE", "milestones_pregenerated.json"),
		MilestoneFile:    envOr("MILESTONE_FILE", "milestones.md"),

		Location:      loc,
		ScheduleTimes: times,

		RunMode:      strings.ToLower(envOr("RUN_MODE", "bot")),
		Port:         envOr("PORT", "8080"),
		DatabasePath: envOr("DATABASE_PATH", "./awesomejar.db"),
	}, nil
}

// parseScheduleTimes parses a comma-separated HH:MM list.
func parseScheduleTimes(s string) ([]TimeOfDay, error) {
	var out []TimeOfDay
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		hh, mm, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid schedule time %q: use HH:MM format", part)
		}
		hour, err := strconv.Atoi(hh)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule time %q: %w", part, err)
		}
		minute, err := strconv.Atoi(mm)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule time %q: %w", part, err)
		}
		if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			return nil, fmt.Errorf("invalid schedule time %q: out of range", part)
		}
		out = append(out, TimeOfDay{Hour: hour, Minute: minute})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("SCHEDULE_TIMES is empty")
	}
	return out, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
