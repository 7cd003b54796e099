// Package telegram is the Telegram bot front end and reminder notifier.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/chris-regnier/kindctl/internal/daily"
	"github.com/chris-regnier/kindctl/internal/history"
	"github.com/chris-regnier/kindctl/internal/kindness"
	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/chris-regnier/kindctl/internal/reminder"
	"github.com/chris-regnier/kindctl/internal/storage"
	"github.com/chris-regnier/kindctl/internal/streak"
)

// Callback data prefixes on inline buttons.
const (
	actionDone = "done"
	actionSkip = "skip"
	actionFav  = "fav"
)

// historyLimit caps /history replies.
const historyLimit = 10

// ErrNoChat is returned by Notify when no chat ID is configured.
var ErrNoChat = errors.New("telegram chat_id is not configured")

// API is the part of *tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot answers commands and button presses for one user.
type Bot struct {
	api    API
	svc    *kindness.Service
	chatID int64 // 0 accepts any chat
}

// New creates a Bot. When chatID is non-zero only that chat is served and
// reminders go there.
func New(api API, svc *kindness.Service, chatID int64) *Bot {
	return &Bot{api: api, svc: svc, chatID: chatID}
}

// Dial connects to the Bot API with token.
func Dial(token string, debug bool) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	api.Debug = debug
	logger.Info("telegram bot authorized", "username", api.Self.UserName)
	return api, nil
}

// Run polls for updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.Handle(ctx, upd)
		}
	}
}

// Handle processes one update. Failures are logged and reported to the chat.
func (b *Bot) Handle(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		b.handleMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		b.handleCallback(ctx, upd.CallbackQuery)
	}
}

func (b *Bot) allowed(chatID int64) bool {
	return b.chatID == 0 || b.chatID == chatID
}

func (b *Bot) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	if m.Chat == nil || !b.allowed(m.Chat.ID) {
		return
	}
	chatID := m.Chat.ID
	if !m.IsCommand() {
		b.send(tgbotapi.NewMessage(chatID, "Try /today, /streak or /history."))
		return
	}

	var err error
	switch m.Command() {
	case "start":
		logger.Info("telegram chat started", "chat_id", chatID)
		err = b.sendToday(ctx, chatID, "Welcome to kindctl! One small act of kindness a day.\n\n")
	case "today":
		err = b.sendToday(ctx, chatID, "")
	case "streak":
		err = b.sendStreak(ctx, chatID)
	case "history":
		err = b.sendHistory(ctx, chatID)
	default:
		b.send(tgbotapi.NewMessage(chatID, "Unknown command. Try /today, /streak or /history."))
	}
	if err != nil {
		b.fail(chatID, err)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.Message.Chat == nil || !b.allowed(cq.Message.Chat.ID) {
		return
	}
	chatID := cq.Message.Chat.ID

	action, id, err := ParseCallback(cq.Data)
	if err != nil {
		b.answer(cq.ID, "Unknown button")
		return
	}

	switch action {
	case actionDone:
		err = b.complete(ctx, chatID, int(id))
	case actionSkip:
		err = b.skip(ctx, chatID, int(id))
	case actionFav:
		var c storage.Completion
		c, err = b.svc.History.ToggleFavorite(ctx, id)
		if err == nil {
			b.answer(cq.ID, favoriteText(c))
			return
		}
	}
	b.answer(cq.ID, "")
	if err != nil {
		b.fail(chatID, err)
	}
}

// complete marks today's prompt done when the button still refers to it.
func (b *Bot) complete(ctx context.Context, chatID int64, promptID int) error {
	d, err := b.svc.Today(ctx)
	if err != nil {
		return err
	}
	if d.Prompt.ID != promptID {
		b.send(tgbotapi.NewMessage(chatID, "That prompt is no longer today's. Here is the current one:"))
		return b.sendToday(ctx, chatID, "")
	}

	res, err := b.svc.Complete(ctx, "")
	if err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, CompletedText(res))
	if c := res.Daily.Completion; c != nil {
		msg.ReplyMarkup = favoriteKeyboard(c.ID)
	}
	b.send(msg)
	return nil
}

func (b *Bot) skip(ctx context.Context, chatID int64, promptID int) error {
	d, err := b.svc.Today(ctx)
	if err != nil {
		return err
	}
	if d.Prompt.ID != promptID {
		return b.sendToday(ctx, chatID, "That prompt was already replaced.\n\n")
	}
	next, err := b.svc.Skip(ctx, "skipped from telegram")
	if errors.Is(err, kindness.ErrAlreadyCompleted) {
		b.send(tgbotapi.NewMessage(chatID, "Today's prompt is already completed. See you tomorrow!"))
		return nil
	}
	if err != nil {
		return err
	}
	b.send(PromptMessage(chatID, next, "Here's another one:\n\n"))
	return nil
}

func (b *Bot) sendToday(ctx context.Context, chatID int64, intro string) error {
	d, err := b.svc.Today(ctx)
	if err != nil {
		return err
	}
	b.send(PromptMessage(chatID, d, intro))
	return nil
}

func (b *Bot) sendStreak(ctx context.Context, chatID int64) error {
	s, err := b.svc.Summary(ctx)
	if err != nil {
		return err
	}
	b.send(tgbotapi.NewMessage(chatID, StreakText(s)))
	return nil
}

func (b *Bot) sendHistory(ctx context.Context, chatID int64) error {
	items, err := b.svc.History.List(ctx, history.Options{Limit: historyLimit})
	if err != nil {
		return err
	}
	b.send(tgbotapi.NewMessage(chatID, HistoryText(items)))
	return nil
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		logger.Error("telegram send failed", "err", err)
	}
}

func (b *Bot) answer(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		logger.Warn("telegram callback answer failed", "err", err)
	}
}

func (b *Bot) fail(chatID int64, err error) {
	logger.Error("telegram request failed", "chat_id", chatID, "err", err)
	b.send(tgbotapi.NewMessage(chatID, "Sorry, something went wrong. Please try again later."))
}

// Name implements reminder.Notifier.
func (b *Bot) Name() string { return "telegram" }

// Notify implements reminder.Notifier by sending the prompt card to the
// configured chat.
func (b *Bot) Notify(_ context.Context, r reminder.Reminder) error {
	if b.chatID == 0 {
		return ErrNoChat
	}
	msg := PromptMessage(b.chatID, r.Daily, "⏰ "+r.Message()+"\n\n")
	msg.DisableNotification = !r.Sound
	_, err := b.api.Send(msg)
	return err
}

// PromptMessage builds a prompt card. Open prompts carry Done and Skip
// buttons, completed ones a Favorite button.
func PromptMessage(chatID int64, d daily.Daily, intro string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, intro+PromptText(d))
	if c := d.Completion; c != nil {
		msg.ReplyMarkup = favoriteKeyboard(c.ID)
	} else {
		msg.ReplyMarkup = promptKeyboard(d.Prompt.ID)
	}
	return msg
}

// PromptText is the body of a prompt card.
func PromptText(d daily.Daily) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💛 %s\n#%s", d.Prompt.Text, d.Prompt.Category)
	if d.Completed() {
		b.WriteString("\n\n✅ Completed today")
	}
	return b.String()
}

// CompletedText confirms a completion.
func CompletedText(res kindness.CompleteResult) string {
	if res.AlreadyCompleted {
		return "You already completed today's prompt. 💛"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Done! Streak: %d (best %d)", res.Progress.CurrentStreak, res.Progress.BestStreak)
	for _, m := range res.Milestones {
		fmt.Fprintf(&b, "\n🎉 %d-day milestone reached!", m)
	}
	return b.String()
}

// StreakText summarizes progress.
func StreakText(s kindness.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔥 Current streak: %d\n🏆 Best streak: %d\n📊 Total completed: %d",
		s.ActiveStreak, s.Progress.BestStreak, s.Progress.TotalCompleted)
	if s.DoneToday {
		b.WriteString("\n✅ Today is done")
	} else {
		b.WriteString("\n⏳ Today is still open: /today")
	}
	if s.NextMilestone > 0 {
		fmt.Fprintf(&b, "\nNext milestone: %d days", s.NextMilestone)
	}
	if u := streak.Unlocked(s.Progress.BestStreak); len(u) > 0 {
		fmt.Fprintf(&b, "\nUnlocked: %v", u)
	}
	return b.String()
}

// HistoryText lists recent completions.
func HistoryText(items []history.Item) string {
	if len(items) == 0 {
		return "No completed prompts yet. Start with /today!"
	}
	var b strings.Builder
	b.WriteString("Recent acts of kindness:\n")
	for _, it := range items {
		fav := ""
		if it.Completion.IsFavorite {
			fav = " ♥"
		}
		fmt.Fprintf(&b, "\n%s%s: %s", it.Completion.CompletedDate, fav, it.Prompt.Text)
	}
	return b.String()
}

func favoriteText(c storage.Completion) string {
	if c.IsFavorite {
		return "Added to favorites ♥"
	}
	return "Removed from favorites"
}

func promptKeyboard(promptID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Done", CallbackData(actionDone, int64(promptID))),
			tgbotapi.NewInlineKeyboardButtonData("⏭ Skip", CallbackData(actionSkip, int64(promptID))),
		),
	)
}

func favoriteKeyboard(completionID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("♥ Favorite", CallbackData(actionFav, completionID)),
		),
	)
}

// CallbackData encodes an inline button payload, e.g. "done:7".
func CallbackData(action string, id int64) string {
	return action + ":" + strconv.FormatInt(id, 10)
}

// ParseCallback decodes CallbackData.
func ParseCallback(data string) (action string, id int64, err error) {
	action, raw, ok := strings.Cut(data, ":")
	if !ok {
		return "", 0, fmt.Errorf("malformed callback %q", data)
	}
	switch action {
	case actionDone, actionSkip, actionFav:
	default:
		return "", 0, fmt.Errorf("unknown callback action %q", action)
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("malformed callback id %q", raw)
	}
	return action, id, nil
}
