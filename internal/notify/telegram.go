// README: Telegram Bot API notifier posting new-order summaries to the dispatch chat.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"tvirti/internal/modules/order"
	"tvirti/internal/modules/pricing"
	"tvirti/internal/types"
)

var ErrTelegramRejected = errors.New("telegram rejected the message")

// Georgia does not observe daylight saving time.
var tbilisi = time.FixedZone("GET", 4*60*60)

type TelegramNotifier struct {
	bot    *bot.Bot
	token  string
	chatID string
}

// NewTelegramNotifier builds a send-only bot client. getMe is skipped so startup does not depend
// on Telegram being reachable.
func NewTelegramNotifier(baseURL, token, chatID string, timeout time.Duration) (*TelegramNotifier, error) {
	opts := []bot.Option{
		bot.WithSkipGetMe(),
		bot.WithHTTPClient(timeout, &http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, bot.WithServerURL(strings.TrimRight(baseURL, "/")))
	}
	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %s", redactToken(err.Error(), token))
	}
	return &TelegramNotifier{bot: b, token: token, chatID: chatID}, nil
}

func (n *TelegramNotifier) OrderCreated(ctx context.Context, o *order.Order) error {
	return n.send(ctx, FormatOrder(o))
}

func (n *TelegramNotifier) send(ctx context.Context, text string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:             n.chatID,
		Text:               text,
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
	})
	if err != nil {
		// The request URL carries the bot token; keep it out of logs.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return fmt.Errorf("telegram sendMessage: %w", uerr.Err)
		}
		return fmt.Errorf("%w: %s", ErrTelegramRejected, redactToken(err.Error(), n.token))
	}
	log.Printf("[notify][telegram] order summary sent to chat %s", n.chatID)
	return nil
}

func redactToken(msg, token string) string {
	if token == "" {
		return msg
	}
	return strings.ReplaceAll(msg, token, "***")
}

var serviceLabels = map[pricing.ServiceType]string{
	pricing.ServiceCargo:     "ტვირთის გადაზიდვა / Cargo",
	pricing.ServiceEvacuator: "ევაკუატორი / Tow truck",
	pricing.ServiceCrane:     "ამწე / Crane",
}

var craneLabels = map[pricing.CraneDuration]string{
	pricing.CraneOneTime: "ერთჯერადი / one-time",
	pricing.CraneHourly:  "საათობრივი / hourly",
	pricing.CraneFullDay: "მთელი დღე / full day",
}

var floorLabels = map[pricing.FloorRange]string{
	pricing.Floors1To5:    "1-5",
	pricing.Floors6To10:   "6-10",
	pricing.Floors11To15:  "11-15",
	pricing.Floors16AndUp: "16+",
}

// FormatOrder renders the plain-text dispatch summary of an order.
func FormatOrder(o *order.Order) string {
	var b strings.Builder
	line := func(label, format string, args ...any) {
		b.WriteString(label)
		b.WriteString(": ")
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "🆕 ახალი შეკვეთა / New order #%s\n\n", shortID(string(o.ID)))

	service := serviceLabels[o.Service]
	if service == "" {
		service = string(o.Service)
	}
	line("სერვისი / Service", "%s", service)
	switch o.Service {
	case pricing.ServiceCrane:
		line("ხანგრძლივობა / Duration", "%s", labelOr(craneLabels[o.CraneDuration], string(o.CraneDuration)))
		if o.FloorRange != "" {
			line("სართული / Floors", "%s", labelOr(floorLabels[o.FloorRange], string(o.FloorRange)))
		}
	default:
		line("ტიპი / Type", "%s", o.SubType)
		if o.Category != "" {
			line("ავტომობილი / Vehicle", "%s", o.Category)
		}
	}

	line("მისამართი / Pickup", "%s", o.Pickup.Address)
	if o.Dropoff != nil {
		line("დანიშნულება / Dropoff", "%s", o.Dropoff.Address)
		line("მანძილი / Distance", "%.1f km", o.DistanceKm)
	}
	if o.ScheduledAt != nil {
		line("დრო / Time", "%s", o.ScheduledAt.In(tbilisi).Format("2006-01-02 15:04"))
	} else {
		line("დრო / Time", "ახლავე / ASAP")
	}

	b.WriteByte('\n')
	line("კლიენტი / Customer", "%s, %s", o.Customer.Name, o.Customer.Phone)
	if o.Comment != "" {
		line("კომენტარი / Comment", "%s", o.Comment)
	}
	line("ფასი / Price", "%s (მძღოლი / driver %s, მოგება / profit %s)",
		o.Price(), types.GEL(o.DriverPrice), types.GEL(o.Profit))
	return strings.TrimRight(b.String(), "\n")
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
