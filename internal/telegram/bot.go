package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-seek-scraper/internal/scraper"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func (b *Bot) escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// SendJob posts one scraped job record to the configured chat.
func (b *Bot) SendJob(job scraper.JobRecord) error {
	msgText := fmt.Sprintf("💼 *%s*\n", b.escapeMarkdown(job.Title))
	msgText += fmt.Sprintf("🏢 %s\n", b.escapeMarkdown(job.Company))
	msgText += fmt.Sprintf("📍 %s\n", b.escapeMarkdown(job.Location))
	msgText += fmt.Sprintf("📅 %s\n", b.escapeMarkdown(job.PostingTime))
	msgText += fmt.Sprintf("🏷️ %s\n", b.escapeMarkdown(job.JobType))
	msgText += fmt.Sprintf("🔗 [View Job](%s)\n", job.URL)

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔗 View Job", job.URL),
		),
	)

	msg := tgbotapi.NewMessage(b.chatID, msgText)
	msg.ParseMode = "MarkdownV2"
	msg.ReplyMarkup = keyboard

	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
