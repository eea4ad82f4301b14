// Package deliver funnels every trigger (scheduled, chat command, HTTP)
// through one pick → compose → hand-off → journal path.
package deliver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jo/awesomejar/internal/catalog"
	"github.com/jo/awesomejar/internal/daytime"
	"github.com/jo/awesomejar/internal/db"
	"github.com/jo/awesomejar/internal/picker"
	"github.com/jo/awesomejar/internal/rephrase"
)

// Apology is sent to the user when a scheduled delivery fails outright.
const Apology = "❌ 今天的肯定發送失敗了，但記住：你依然很棒 ☀️"

const (
	ModePregenerated = "pregenerated"
	ModeAPI          = "api"
)

// SendFunc hands a finished message to a transport (Discord reply, DM,
// webhook). Failures surface to the trigger caller; the courier does not
// retry.
type SendFunc func(content string) error

// Courier composes and dispatches milestone messages. In pregenerated mode
// it picks with anti-repeat tracking and decorates with a greeting; in API
// mode it picks recency-weighted and rephrases through the LLM.
type Courier struct {
	session  *picker.Session
	engine   *rephrase.Engine // nil in pregenerated mode
	database *db.DB
	loc      *time.Location
	now      func() time.Time // overridable in tests
}

func New(session *picker.Session, engine *rephrase.Engine, database *db.DB, loc *time.Location) *Courier {
	return &Courier{
		session:  session,
		engine:   engine,
		database: database,
		loc:      loc,
		now:      time.Now,
	}
}

// Mode reports which composition path this courier runs.
func (c *Courier) Mode() string {
	if c.engine == nil {
		return ModePregenerated
	}
	return ModeAPI
}

// Session exposes the selection session for command handlers (stats,
// reset).
func (c *Courier) Session() *picker.Session {
	return c.session
}

// Engine exposes the rephrase engine; nil in pregenerated mode.
func (c *Courier) Engine() *rephrase.Engine {
	return c.engine
}

// DB exposes the journal for command handlers.
func (c *Courier) DB() *db.DB {
	return c.database
}

// Compose picks one milestone (optionally category-filtered) and turns it
// into the final message for the current local time.
func (c *Courier) Compose(ctx context.Context, category string) (string, catalog.Item, error) {
	now := c.now().In(c.loc)
	hour, minute := now.Hour(), now.Minute()

	if c.engine == nil {
		item, err := c.session.Pick(picker.Options{Category: category, AvoidRepeats: true})
		if err != nil {
			return "", catalog.Item{}, err
		}
		return daytime.Decorate(item.Text, hour), item, nil
	}

	item, err := c.session.Pick(picker.Options{Category: category, Weighted: true})
	if err != nil {
		return "", catalog.Item{}, err
	}
	// The rephrase call happens outside the selection lock and never
	// fails upward; a provider error falls back to the raw text.
	return c.engine.Contextualize(ctx, item, hour, minute), item, nil
}

// Send composes one milestone and hands it to send. The delivery is
// journaled on success; journaling problems are logged, not surfaced.
func (c *Courier) Send(ctx context.Context, send SendFunc) (catalog.Item, error) {
	message, item, err := c.Compose(ctx, "")
	if err != nil {
		return catalog.Item{}, err
	}
	if err := send(message); err != nil {
		return item, fmt.Errorf("delivering milestone: %w", err)
	}
	if c.database != nil {
		if err := c.database.RecordDelivery(item.ID, item.Category, c.Mode(), message); err != nil {
			log.Printf("courier: journaling delivery: %v", err)
		}
	}
	log.Printf("sent milestone: id=%d category=%s mode=%s", item.ID, item.Category, c.Mode())
	return item, nil
}

// PostWebhook delivers content to a Discord-style webhook.
func PostWebhook(url, content string) error {
	payload := map[string]string{"content": content}
	body, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
