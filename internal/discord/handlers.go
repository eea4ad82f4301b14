package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/jo/awesomejar/internal/catalog"
	"github.com/jo/awesomejar/internal/db"
	"github.com/jo/awesomejar/internal/deliver"
	"github.com/jo/awesomejar/internal/picker"
)

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore own messages
	if m.Author.ID == s.State.User.ID {
		return
	}

	// Only respond to DMs or when mentioned
	isDM := m.GuildID == ""
	isMentioned := false
	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			isMentioned = true
			break
		}
	}

	if !isDM && !isMentioned {
		return
	}

	// Remember the DM channel so scheduled milestones can reach the user.
	if isDM {
		b.rememberChannel(m.ChannelID)
	}

	content := strings.TrimSpace(stripMention(m.Content, s.State.User.ID))
	if content == "" {
		return
	}

	command, arg, _ := strings.Cut(content, " ")
	arg = strings.TrimSpace(arg)

	var reply string
	switch strings.ToLower(command) {
	case "milestone", "✨":
		reply = b.milestoneReply(arg)
	case "test", "🧪":
		reply = b.testReply()
	case "stats":
		reply = b.statsReply()
	case "categories":
		reply = b.categoriesReply()
	case "reset":
		b.courier.Session().ResetUsage()
		reply = "🔄 已重置！所有成就都可以再次出現了。"
	default:
		reply = helpMessage()
	}

	if err := b.SendToChannel(m.ChannelID, reply); err != nil {
		log.Printf("discord: replying: %v", err)
	}
}

// rememberChannel notes the DM channel for scheduled deliveries. Best
// effort, but a failure leaves scheduled DMs with no destination, so it
// gets logged.
func (b *Bot) rememberChannel(channelID string) {
	if b.courier.DB() == nil {
		return
	}
	if err := b.courier.DB().SetNote(db.ChannelNoteKey, channelID); err != nil {
		log.Printf("discord: saving DM channel note: %v", err)
	}
}

func (b *Bot) milestoneReply(category string) string {
	message, _, err := b.courier.Compose(context.Background(), category)
	if err != nil {
		var unknownCat *catalog.UnknownCategoryError
		switch {
		case errors.As(err, &unknownCat):
			return fmt.Sprintf("❓ 找不到分類「%s」。\n可用的分類：%s",
				unknownCat.Category, strings.Join(unknownCat.Valid, "、"))
		case errors.Is(err, picker.ErrEmptyPool):
			return "📭 罐子是空的，沒有可以選的成就。"
		default:
			log.Printf("discord: composing milestone: %v", err)
			return "❌ 哎呀，出錯了。請稍後再試。"
		}
	}
	return message
}

// testReply previews the delivery behavior. Pregenerated mode shows three
// different milestones without touching the anti-repeat state; API mode
// shows one milestone rephrased at four times of day, one per tone
// template.
func (b *Bot) testReply() string {
	if b.courier.Mode() == deliver.ModeAPI {
		return b.testAPIReply()
	}

	var sb strings.Builder
	sb.WriteString("🧪 測試模式：隨機選擇 3 個不同的肯定...\n")
	for i := 1; i <= 3; i++ {
		item, err := b.courier.Session().Pick(picker.Options{})
		if err != nil {
			log.Printf("discord: test pick: %v", err)
			return "❌ 測試時出錯了"
		}
		fmt.Fprintf(&sb, "\n**範例 %d：%s**\n%s\n", i, item.Category, item.Text)
	}
	return sb.String()
}

var testTimes = []struct {
	hour, minute int
	label        string
}{
	{8, 0, "早上"},
	{12, 0, "中午"},
	{16, 0, "下午"},
	{20, 0, "晚上"},
}

func (b *Bot) testAPIReply() string {
	item, err := b.courier.Session().Pick(picker.Options{Weighted: true})
	if err != nil {
		log.Printf("discord: test pick: %v", err)
		return "❌ 測試時出錯了"
	}

	var sb strings.Builder
	sb.WriteString("🧪 測試模式：同一個成就在不同時間的傳遞方式...\n")
	fmt.Fprintf(&sb, "\n**原始成就：**\n%s\n", item.Text)
	for _, tt := range testTimes {
		message := b.courier.Engine().Contextualize(context.Background(), item, tt.hour, tt.minute)
		fmt.Fprintf(&sb, "\n**%s (%02d:%02d)：**\n%s\n", tt.label, tt.hour, tt.minute, message)
	}
	return sb.String()
}

func (b *Bot) statsReply() string {
	cat := b.courier.Session().Catalog()
	stats := cat.Stats()

	type row struct {
		name  string
		count int
	}
	rows := make([]row, 0, len(stats))
	for name, count := range stats {
		rows = append(rows, row{name, count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].name < rows[j].name
	})
	if len(rows) > 10 {
		rows = rows[:10]
	}

	var sb strings.Builder
	sb.WriteString("📊 **好棒棒罐統計**\n\n")
	fmt.Fprintf(&sb, "總計：%d 個成就\n", cat.Len())
	fmt.Fprintf(&sb, "分類數：%d 個\n", len(stats))
	if database := b.courier.DB(); database != nil {
		if sent, err := database.DeliveryCount(); err == nil {
			fmt.Fprintf(&sb, "已發送：%d 次\n", sent)
		}
	}
	sb.WriteString("\n**各分類成就數：**\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "• %s: %d\n", r.name, r.count)
	}

	if database := b.courier.DB(); database != nil {
		if recent, err := database.RecentDeliveries(3); err == nil && len(recent) > 0 {
			sb.WriteString("\n**最近發送：**\n")
			for _, del := range recent {
				fmt.Fprintf(&sb, "• %s — %s\n", del.SentAt, del.Category)
			}
		}
	}
	return sb.String()
}

func (b *Bot) categoriesReply() string {
	cats := b.courier.Session().Catalog().Categories()
	if len(cats) == 0 {
		return "📭 罐子是空的。"
	}
	return "🗂 **分類：**\n• " + strings.Join(cats, "\n• ")
}

func helpMessage() string {
	return `📖 **好棒棒罐使用指南**

**指令：**
• ` + "`milestone [分類]`" + ` - 立即獲得一個肯定
• ` + "`test`" + ` - 預覽 3 個隨機肯定
• ` + "`stats`" + ` - 查看好棒棒罐統計
• ` + "`categories`" + ` - 列出所有分類
• ` + "`reset`" + ` - 重置防重複追蹤
• ` + "`help`" + ` - 顯示此幫助訊息

**自動提醒：**
機器人每天會在排定的時間自動發送肯定。

記住：你一直都很棒，只是有時候忘記了 💫`
}

func stripMention(s, userID string) string {
	s = strings.ReplaceAll(s, "<@"+userID+">", "")
	s = strings.ReplaceAll(s, "<@!"+userID+">", "")
	return s
}

func splitMessage(s string, maxLen int) []string {
	if len(s) <= maxLen {
		return []string{s}
	}
	var chunks []string
	for len(s) > 0 {
		end := maxLen
		if end > len(s) {
			end = len(s)
		}
		// Try to split at a newline
		if idx := strings.LastIndex(s[:end], "\n"); idx > 0 {
			end = idx + 1
		}
		chunks = append(chunks, s[:end])
		s = s[end:]
	}
	return chunks
}
