package notify

import (
	"fmt"
	"log"
	"strings"
	"time"

	"ema_scanner/internal/models"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
}

// Telegram — пассивный нотифайер: алерты о кроссоверах после скана.
type Telegram struct {
	bot    *tgbot.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{
		bot:    b,
		chatID: chatID,
	}, nil
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	_, _ = t.bot.Send(tgbot.NewMessage(t.chatID, msg))
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// FormatScan собирает сообщение по итогу батч-скана.
// Пустой список событий — валидный исход, о нём не спамим.
func FormatScan(scan *models.WatchlistScan) (string, bool) {
	if len(scan.Events) == 0 {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Скан %s: %d пересечений (▲%d ▼%d)\n",
		scan.Timeframe, len(scan.Events), scan.Positive(), scan.Negative())
	for _, e := range scan.Events {
		arrow := "📈"
		if e.Direction == models.DirectionNegative {
			arrow = "📉"
		}
		fmt.Fprintf(&b, "%s %s @ %.2f | EMA10 %.2f / EMA20 %.2f | %s\n",
			arrow, e.Symbol, e.Close, e.EMA10, e.EMA20,
			e.Timestamp.Format(time.DateTime))
	}
	if len(scan.Errors) > 0 {
		fmt.Fprintf(&b, "⚠️ ошибок по символам: %d\n", len(scan.Errors))
	}
	return b.String(), true
}

// Stdout — заглушка, всё логирует.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { log.Println(msg) }
func (s *Stdout) Sendf(format string, args ...any) { log.Printf(format, args...) }
