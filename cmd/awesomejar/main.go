package main

import (
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/jo/awesomejar/config"
	"github.com/jo/awesomejar/internal/catalog"
	"github.com/jo/awesomejar/internal/db"
	"github.com/jo/awesomejar/internal/deliver"
	"github.com/jo/awesomejar/internal/discord"
	"github.com/jo/awesomejar/internal/llm"
	"github.com/jo/awesomejar/internal/picker"
	"github.com/jo/awesomejar/internal/rephrase"
	"github.com/jo/awesomejar/internal/scheduler"
	"github.com/jo/awesomejar/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.DiscordToken == "" && cfg.DiscordWebhook == "" {
		log.Fatalf("set DISCORD_BOT_TOKEN or DISCORD_WEBHOOK_URL")
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	cat, engine := loadCatalog(cfg)
	logBreakdown(cat)

	session := picker.NewSession(cat, rand.New(rand.NewSource(time.Now().UnixNano())))
	courier := deliver.New(session, engine, database, cfg.Location)

	if cfg.RunMode == "http" {
		runHTTP(cfg, courier)
		return
	}
	runBot(cfg, database, courier)
}

// loadCatalog loads milestones per the configured mode. Pregenerated mode
// needs no LLM; API mode parses the markdown jar and builds the rephrase
// engine.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, *rephrase.Engine) {
	if cfg.UsePregenerated {
		cat, meta, err := catalog.LoadPregenerated(cfg.PregeneratedFile)
		if err != nil {
			log.Fatalf("failed to load pregenerated milestones: %v", err)
		}
		if meta.Version != "" {
			log.Printf("pregenerated catalog version %s (%s)", meta.Version, meta.GeneratedDate)
		}
		return cat, nil
	}

	cat, err := catalog.LoadMarkdown(cfg.MilestoneFile)
	if err != nil {
		log.Fatalf("failed to load milestones: %v", err)
	}

	apiKey := cfg.AnthropicKey
	if cfg.LLMProvider == "openai" {
		apiKey = cfg.OpenAIKey
	}
	client, err := llm.NewClient(llm.ProviderConfig{
		Provider:  cfg.LLMProvider,
		APIKey:    apiKey,
		AuthToken: cfg.AnthropicToken,
		Model:     cfg.LLMModel,
		BaseURL:   cfg.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("failed to create LLM client: %v", err)
	}
	return cat, rephrase.New(client)
}

func logBreakdown(cat *catalog.Catalog) {
	stats := cat.Stats()
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return stats[names[i]] > stats[names[j]] })
	if len(names) > 5 {
		names = names[:5]
	}
	log.Printf("catalog: %d milestones, %d categories", cat.Len(), len(stats))
	for _, name := range names {
		log.Printf("  %s: %d", name, stats[name])
	}
}

// runHTTP serves the Cloud-Scheduler trigger; delivery goes through the
// webhook since there is no gateway connection.
func runHTTP(cfg *config.Config, courier *deliver.Courier) {
	if cfg.DiscordWebhook == "" {
		log.Fatalf("http mode requires DISCORD_WEBHOOK_URL")
	}
	send := func(content string) error {
		return deliver.PostWebhook(cfg.DiscordWebhook, content)
	}
	srv := web.NewServer(courier, send)
	log.Printf("http trigger listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("http server: %v", err)
	}
}

func runBot(cfg *config.Config, database *db.DB, courier *deliver.Courier) {
	if cfg.DiscordToken == "" {
		log.Fatalf("bot mode requires DISCORD_BOT_TOKEN")
	}
	bot, err := discord.NewBot(cfg.DiscordToken, courier)
	if err != nil {
		log.Fatalf("failed to start Discord bot: %v", err)
	}
	defer bot.Close()

	sched := scheduler.New(courier, database, cfg.DiscordWebhook, bot.SendToChannel, cfg.Location, cfg.ScheduleTimes)
	sched.Start()
	defer sched.Stop()

	log.Println("bot is running. Press Ctrl+C to exit.")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down.")
}
