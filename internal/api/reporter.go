package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"trackbench/internal/domain/entity"
	"trackbench/internal/domain/port"
)

// Reporter отправляет итог прогона в Telegram-чат.
type Reporter struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger
}

// NewReporter авторизуется по токену бота.
func NewReporter(token string, chatID int64, log *zap.Logger) (*Reporter, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram reporter needs both token and chat id")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	log.Info("telegram reporter authorized", zap.String("account", api.Self.UserName))

	return &Reporter{
		api:    api,
		chatID: chatID,
		log:    log,
	}, nil
}

// Report отправляет сообщение с итогом.
func (r *Reporter) Report(ctx context.Context, summary *entity.RunSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(r.chatID, FormatSummary(summary))
	if _, err := r.api.Send(msg); err != nil {
		return fmt.Errorf("send summary: %w", err)
	}

	r.log.Debug("summary sent", zap.String("run_id", summary.RunID), zap.Int64("chat_id", r.chatID))
	return nil
}

// FormatSummary собирает текст сообщения из итоговой строки и дополнительных показателей.
func FormatSummary(s *entity.RunSummary) string {
	var b strings.Builder
	b.WriteString(s.Line())
	fmt.Fprintf(&b, "\nframes: %d", s.Frames)
	fmt.Fprintf(&b, "\nfps: %.1f ± %.1f", s.FPSMean, s.FPSStdDev)
	if s.HasIoU {
		fmt.Fprintf(&b, "\nmean IoU: %.4f", s.MeanIoU)
		fmt.Fprintf(&b, "\nmean unbiased IoU: %.4f", s.MeanUnbiasedIoU)
	}
	if s.Cancelled {
		b.WriteString("\nstopped by operator")
	}
	if s.RunID != "" {
		fmt.Fprintf(&b, "\nrun: %s", s.RunID)
	}
	return b.String()
}

// Проверка реализации интерфейса.
var _ port.SummaryReporter = (*Reporter)(nil)
