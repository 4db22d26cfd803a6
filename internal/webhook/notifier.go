// Пакет webhook — best-effort доставка уведомлений во внешнюю автоматизацию.
//
// Notifier держит буферизованную очередь и одну фоновую горутину-воркер.
// После успешной мутации заявки сервис ставит уведомление в очередь;
// воркер выполняет POST JSON {recordId, action} на URL, настроенный для
// действия. Любая ошибка доставки (сеть, не-2xx) логируется и глотается:
// ни retry, ни dead-letter очереди нет, семантика at-most-once.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики доставки уведомлений.
var (
	deliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sd_webhook_deliveries_total",
		Help: "Количество попыток доставки webhook-уведомлений",
	}, []string{"action", "outcome"}) // outcome: ok, error, skipped

	droppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sd_webhook_dropped_total",
		Help: "Количество уведомлений, отброшенных из-за переполнения очереди",
	})
)

// Notification — полезная нагрузка webhook-уведомления.
type Notification struct {
	// RecordID — идентификатор заявки.
	RecordID string `json:"recordId"`
	// Action — выполненное действие (processed, unprocessed, delete).
	Action string `json:"action"`
}

// Notifier — очередь и воркер доставки webhook-уведомлений.
type Notifier struct {
	// urls — статический маппинг действие → URL. Пустой URL — действие без уведомления.
	urls       map[string]string
	httpClient *http.Client
	logger     *slog.Logger

	queue  chan Notification
	cancel context.CancelFunc
	done   chan struct{}
}

// New создаёт Notifier.
// urls — маппинг действие → URL webhook (пустые значения допустимы);
// timeout — таймаут одного исходящего POST; queueSize — ёмкость очереди.
func New(urls map[string]string, timeout time.Duration, queueSize int, logger *slog.Logger) *Notifier {
	return &Notifier{
		urls:       urls,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "webhook")),
		queue:      make(chan Notification, queueSize),
	}
}

// Start запускает фоновую горутину-воркер.
// Вызывается один раз при старте приложения.
func (n *Notifier) Start(ctx context.Context) {
	ctx, n.cancel = context.WithCancel(ctx)
	n.done = make(chan struct{})

	go func() {
		defer close(n.done)

		n.logger.Info("Воркер webhook-уведомлений запущен",
			slog.Int("queue_size", cap(n.queue)),
		)

		for {
			select {
			case <-ctx.Done():
				n.logger.Info("Воркер webhook-уведомлений остановлен")
				return
			case ntf := <-n.queue:
				n.deliver(ctx, ntf)
			}
		}
	}()
}

// Stop останавливает воркер и ждёт завершения.
// Уведомления, оставшиеся в очереди, теряются (best-effort).
func (n *Notifier) Stop() {
	if n.cancel != nil {
		n.cancel()
	}
	if n.done != nil {
		<-n.done
	}
}

// Enqueue ставит уведомление в очередь. Неблокирующий: при переполнении
// очереди уведомление отбрасывается с записью в лог и метрику.
func (n *Notifier) Enqueue(action, recordID string) {
	select {
	case n.queue <- Notification{RecordID: recordID, Action: action}:
	default:
		droppedTotal.Inc()
		n.logger.Warn("Очередь webhook переполнена, уведомление отброшено",
			slog.String("record_id", recordID),
			slog.String("action", action),
		)
	}
}

// deliver выполняет один POST webhook. Ошибки логируются и не распространяются.
func (n *Notifier) deliver(ctx context.Context, ntf Notification) {
	whURL := n.urls[ntf.Action]
	if whURL == "" {
		deliveriesTotal.WithLabelValues(ntf.Action, "skipped").Inc()
		return
	}

	if err := n.post(ctx, whURL, ntf); err != nil {
		deliveriesTotal.WithLabelValues(ntf.Action, "error").Inc()
		n.logger.Warn("Ошибка доставки webhook",
			slog.String("url", whURL),
			slog.String("record_id", ntf.RecordID),
			slog.String("action", ntf.Action),
			slog.String("error", err.Error()),
		)
		return
	}

	deliveriesTotal.WithLabelValues(ntf.Action, "ok").Inc()
	n.logger.Debug("Webhook доставлен",
		slog.String("record_id", ntf.RecordID),
		slog.String("action", ntf.Action),
	)
}

// post выполняет POST JSON и проверяет статус ответа.
// Тело ответа не интерпретируется.
func (n *Notifier) post(ctx context.Context, whURL string, ntf Notification) error {
	body, err := json.Marshal(ntf)
	if err != nil {
		return fmt.Errorf("ошибка сериализации уведомления: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, whURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	// Дочитываем тело для переиспользования соединения
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook вернул статус %d", resp.StatusCode)
	}
	return nil
}
