package telegram

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"portfolio-chat/internal/classify"
	"portfolio-chat/internal/config"
	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/usecase/chat"
)

const chunkSize = 2048

// sectionCommands maps bot commands onto formatted portfolio sections.
var sectionCommands = map[string]string{
	"summary":        classify.SectionSummary,
	"about":          classify.SectionSummary,
	"projects":       classify.SectionProjects,
	"skills":         classify.SectionSkills,
	"technical":      classify.SectionTechnicalSkills,
	"soft":           classify.SectionSoftSkills,
	"experience":     classify.SectionWorkExperience,
	"education":      classify.SectionEducation,
	"certifications": classify.SectionCertifications,
	"contact":        classify.SectionContact,
}

type Bot struct {
	api    *tgbotapi.BotAPI
	cfg    config.Config
	chat   *chat.Service
	logger zerolog.Logger
}

func NewBot(cfg config.Config, chatSvc *chat.Service) (*Bot, error) {
	if cfg.TelegramToken == "" {
		return nil, errors.New("telegram token is required")
	}
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:    api,
		cfg:    cfg,
		chat:   chatSvc,
		logger: log.With().Str("component", "telegram").Logger(),
	}, nil
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	b.logger.Info().Str("bot", b.api.Self.UserName).Msg("telegram bot polling")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	logger := b.logger.With().Int64("chat_id", msg.Chat.ID).Logger()
	if !b.cfg.ChatAllowed(msg.Chat.ID) {
		logger.Debug().Msg("chat not in allowlist")
		b.sendText(msg.Chat.ID, msg.MessageID, "access denied")
		return
	}

	sess := b.chat.SessionFor(strconv.FormatInt(msg.Chat.ID, 10))

	if msg.IsCommand() {
		b.handleCommand(msg, sess)
		return
	}

	b.sendChatAction(msg.Chat.ID, tgbotapi.ChatTyping)

	reply, err := b.chat.HandleMessage(ctx, sess, msg.Text, nil)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			b.sendText(msg.Chat.ID, msg.MessageID, "ask me something about the portfolio")
		case errors.Is(err, domain.ErrBusy):
			b.sendText(msg.Chat.ID, msg.MessageID, "wait for the previous answer")
		default:
			logger.Error().Err(err).Msg("turn failed")
		}
		return
	}

	b.sendText(msg.Chat.ID, msg.MessageID, reply.Text)
	if reply.ResumeButton {
		if err := b.sendResume(msg.Chat.ID, msg.MessageID); err != nil {
			logger.Warn().Err(err).Msg("failed to send resume")
			b.sendText(msg.Chat.ID, msg.MessageID, "the resume is not available right now")
		}
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message, sess *domain.Session) {
	reply := commandReply(b.chat, msg.Command(), sess)
	b.sendText(msg.Chat.ID, msg.MessageID, reply)
}

// commandReply answers /start and the section commands from static data.
func commandReply(svc *chat.Service, command string, sess *domain.Session) string {
	command = strings.ToLower(command)
	if command == "start" || command == "help" {
		if msgs := sess.Messages(); len(msgs) > 0 {
			return msgs[0].Text
		}
	}
	if key, ok := sectionCommands[command]; ok {
		if out, ok := svc.Section(key); ok {
			return out
		}
	}
	return "unknown command, try /projects, /skills, /experience, /education or /contact"
}

func (b *Bot) sendText(chatID int64, replyTo int, text string) {
	chunks := splitText(text, chunkSize)
	for idx, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, toMarkdownV2(chunk))
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		if idx == 0 {
			msg.ReplyToMessageID = replyTo
		}
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Debug().Err(err).Int64("chat_id", chatID).Msg("markdown rejected, resending as plain text")
			msg.Text = chunk
			msg.ParseMode = ""
			if _, err := b.api.Send(msg); err != nil {
				b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send reply")
			}
		}
	}
}

func (b *Bot) sendChatAction(chatID int64, action string) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, action)); err != nil {
		b.logger.Debug().Err(err).Msg("failed to send chat action")
	}
}

func (b *Bot) sendResume(chatID int64, replyTo int) error {
	if _, err := os.Stat(b.cfg.ResumePath); err != nil {
		return err
	}
	b.sendChatAction(chatID, tgbotapi.ChatUploadDocument)

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(b.cfg.ResumePath))
	doc.ReplyToMessageID = replyTo
	_, err := b.api.Send(doc)
	return err
}

func splitText(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/chunkSize+1)
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
