package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"atlas/internal/config"
)

const userAgent = "Atlas-Go/0.1.0"

// Service defines the notification surface exposed to catalogue workflows.
type Service interface {
	NotifyImportCompleted(ctx context.Context, category string, imported, skipped int) error
	NotifyBulkImagesStarted(ctx context.Context, count int) error
	NotifyBulkImagesCompleted(ctx context.Context, succeeded, failed int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:   topic,
		client:     &http.Client{Timeout: timeout},
		imports:    cfg.Notifications.Import,
		bulkImages: cfg.Notifications.BulkImages,
		errors:     cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint   string
	client     *http.Client
	imports    bool
	bulkImages bool
	errors     bool
}

func (n *ntfyService) NotifyImportCompleted(ctx context.Context, category string, imported, skipped int) error {
	if !n.imports {
		return nil
	}
	category = strings.TrimSpace(category)
	message := fmt.Sprintf("Imported %d %s records", imported, category)
	if skipped > 0 {
		message = fmt.Sprintf("%s (%d rows skipped)", message, skipped)
	}
	data := payload{
		title:   "Atlas - Import Complete",
		message: message,
		tags:    []string{"atlas", "import", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyBulkImagesStarted(ctx context.Context, count int) error {
	if !n.bulkImages {
		return nil
	}
	data := payload{
		title:   "Atlas - Image Update Started",
		message: fmt.Sprintf("Started updating images for %d records", count),
		tags:    []string{"atlas", "images", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyBulkImagesCompleted(ctx context.Context, succeeded, failed int, duration time.Duration) error {
	if !n.bulkImages {
		return nil
	}
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	durationText := duration.String()
	if duration == 0 {
		durationText = "0s"
	}

	var title string
	var message string
	if failed == 0 {
		title = "Atlas - Image Update Complete"
		message = fmt.Sprintf("Image update complete: %d records updated in %s", succeeded, durationText)
	} else {
		title = "Atlas - Image Update Complete (with errors)"
		message = fmt.Sprintf("Image update complete: %d succeeded, %d failed in %s", succeeded, failed, durationText)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"atlas", "images", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Atlas - Error",
		message:  builder.String(),
		tags:     []string{"atlas", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Atlas - Test",
		message:  "Notification system test",
		tags:     []string{"atlas", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyImportCompleted(context.Context, string, int, int) error { return nil }
func (noopService) NotifyBulkImagesStarted(context.Context, int) error            { return nil }
func (noopService) NotifyBulkImagesCompleted(context.Context, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
