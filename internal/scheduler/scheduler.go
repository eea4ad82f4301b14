package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jo/awesomejar/config"
	"github.com/jo/awesomejar/internal/db"
	"github.com/jo/awesomejar/internal/deliver"
	"github.com/robfig/cron/v3"
)

// DMSendFunc sends content to a Discord channel.
type DMSendFunc func(channelID, content string) error

// Scheduler fires the courier at fixed daily times in the configured
// timezone. A failed cycle is logged and ends; the next slot runs as
// normal.
type Scheduler struct {
	cron       *cron.Cron
	courier    *deliver.Courier
	database   *db.DB
	webhookURL string
	dmSend     DMSendFunc
	times      []config.TimeOfDay
}

func New(courier *deliver.Courier, database *db.DB, webhookURL string, dmSend DMSendFunc, loc *time.Location, times []config.TimeOfDay) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		courier:    courier,
		database:   database,
		webhookURL: webhookURL,
		dmSend:     dmSend,
		times:      times,
	}
}

func (s *Scheduler) Start() {
	for _, t := range s.times {
		t := t
		if _, err := s.cron.AddFunc(CronSpec(t), func() {
			s.runSlot(t)
		}); err != nil {
			log.Printf("scheduler: registering slot %s: %v", t, err)
			continue
		}
		log.Printf("scheduler: daily milestone at %s", t)
	}
	s.cron.Start()
	log.Println("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// CronSpec converts a daily time slot to a cron expression.
func CronSpec(t config.TimeOfDay) string {
	return fmt.Sprintf("%d %d * * *", t.Minute, t.Hour)
}

func (s *Scheduler) runSlot(t config.TimeOfDay) {
	label := fmt.Sprintf("scheduler[%s]", t)

	item, err := s.courier.Send(context.Background(), s.deliverMessage)
	if err != nil {
		log.Printf("%s: %v", label, err)
		// Best effort: the user still gets something at the scheduled time.
		if aerr := s.deliverMessage(deliver.Apology); aerr != nil {
			log.Printf("%s: apology failed too: %v", label, aerr)
		}
		return
	}
	log.Printf("%s: sent milestone id=%d category=%s", label, item.ID, item.Category)
}

// deliverMessage DMs the noted channel first and falls back to the
// webhook.
func (s *Scheduler) deliverMessage(content string) error {
	if s.dmSend != nil && s.database != nil {
		channelID, err := s.database.GetNote(db.ChannelNoteKey)
		if err == nil && channelID != "" {
			if err := s.dmSend(channelID, content); err != nil {
				log.Printf("scheduler: DM send failed: %v", err)
			} else {
				return nil
			}
		}
	}
	if s.webhookURL != "" {
		return deliver.PostWebhook(s.webhookURL, content)
	}
	return fmt.Errorf("no delivery method available (no DM channel and no webhook)")
}
