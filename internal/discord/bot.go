package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/jo/awesomejar/internal/deliver"
)

type Bot struct {
	session *discordgo.Session
	courier *deliver.Courier
}

func NewBot(token string, courier *deliver.Courier) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating Discord session: %w", err)
	}

	bot := &Bot{session: s, courier: courier}
	s.AddHandler(bot.onMessage)
	s.Identify.Intents = discordgo.IntentsDirectMessages | discordgo.IntentsGuildMessages

	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("opening Discord connection: %w", err)
	}

	log.Printf("Discord bot connected as %s", s.State.User.Username)
	return bot, nil
}

// SendToChannel delivers content to a channel (including DM channels),
// splitting to fit Discord's message limit.
func (b *Bot) SendToChannel(channelID, content string) error {
	for _, chunk := range splitMessage(content, 2000) {
		if _, err := b.session.ChannelMessageSend(channelID, chunk); err != nil {
			return fmt.Errorf("sending to channel %s: %w", channelID, err)
		}
	}
	return nil
}

func (b *Bot) Close() {
	b.session.Close()
}
