// Package notify pushes new dashboard alerts to a Telegram chat.
package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"

	"github.com/etwin/twinboard/internal/models"
)

// Sender is the part of *tgbotapi.BotAPI the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

var severityRank = map[string]int{
	"low":      1,
	"medium":   2,
	"high":     3,
	"critical": 4,
}

// SeverityRank orders severities; unknown values rank lowest.
func SeverityRank(severity string) int {
	return severityRank[strings.ToLower(severity)]
}

const seenAlerts = 512

// Notifier sends every alert it has not seen before whose severity reaches the
// configured minimum. Alerts present in the first dashboard it observes are
// treated as already known.
type Notifier struct {
	sender      Sender
	chatID      int64
	minSeverity int
	logger      *logrus.Logger

	mu     sync.Mutex
	seen   *lru.Cache
	primed bool
}

func NewNotifier(sender Sender, chatID int64, minSeverity string, logger *logrus.Logger) (*Notifier, error) {
	seen, err := lru.New(seenAlerts)
	if err != nil {
		return nil, err
	}
	return &Notifier{
		sender:      sender,
		chatID:      chatID,
		minSeverity: SeverityRank(minSeverity),
		logger:      logger,
		seen:        seen,
	}, nil
}

// NewTelegramNotifier authorizes the bot token and returns a notifier posting to chatID.
func NewTelegramNotifier(token string, chatID int64, minSeverity string, logger *logrus.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	logger.WithField("account", bot.Self.UserName).Info("Authorized on Telegram")
	return NewNotifier(bot, chatID, minSeverity, logger)
}

func alertKey(a models.Alert) string {
	return fmt.Sprintf("%d|%s|%s", a.ID, a.Type, a.Timestamp)
}

// Observe implements dashboard.Observer.
func (n *Notifier) Observe(_ context.Context, d *models.Dashboard) error {
	if d.Sources[models.SectionAlerts] == models.SourceOffline {
		return nil
	}

	n.mu.Lock()
	var fresh []models.Alert
	// oldest first so the chat reads chronologically
	for i := len(d.Alerts) - 1; i >= 0; i-- {
		a := d.Alerts[i]
		key := alertKey(a)
		if n.seen.Contains(key) {
			continue
		}
		n.seen.Add(key, struct{}{})
		if n.primed && SeverityRank(a.Severity) >= n.minSeverity {
			fresh = append(fresh, a)
		}
	}
	n.primed = true
	n.mu.Unlock()

	var failed int
	for _, a := range fresh {
		msg := tgbotapi.NewMessage(n.chatID, FormatAlert(a))
		if _, err := n.sender.Send(msg); err != nil {
			failed++
			n.logger.WithError(err).WithField("alert_id", a.ID).Error("Error sending alert")
			continue
		}
		n.logger.WithFields(logrus.Fields{
			"alert_id": a.ID,
			"severity": a.Severity,
		}).Info("Alert pushed")
	}
	if failed > 0 {
		return fmt.Errorf("failed to push %d of %d alerts", failed, len(fresh))
	}
	return nil
}

// FormatAlert renders an alert as a plain-text chat message.
func FormatAlert(a models.Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", strings.ToUpper(a.Severity), a.Type)
	if a.Message != "" {
		b.WriteString("\n")
		b.WriteString(a.Message)
	}
	if a.Timestamp != "" {
		b.WriteString("\n")
		b.WriteString(a.Timestamp)
	}
	return b.String()
}
