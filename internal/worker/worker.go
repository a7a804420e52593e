// Package worker provides a NATS worker that normalizes text pages.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/book-expert/events"
	"github.com/book-expert/logger"
	"github.com/book-expert/nsw-normalizer/internal/core"
	"github.com/book-expert/nsw-normalizer/internal/pipeline"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const handleMessageTimeout = 30 * time.Second

// Object key suffixes for the stored results.
const (
	normalizedKeySuffix    = ".txt"
	pronunciationKeySuffix = ".msgpack"
)

var (
	// ErrSubjectEmpty indicates that the worker has no subject to listen on.
	ErrSubjectEmpty = errors.New("subject cannot be empty")
	// ErrTextKeyEmpty indicates an event without a text object key.
	ErrTextKeyEmpty = errors.New("text key cannot be empty")
)

// TextPipeline turns raw text into normalized words and pronunciations.
type TextPipeline interface {
	Run(text string) (pipeline.Result, error)
}

// NatsWorker listens for processed text pages on a NATS subject and normalizes them.
type NatsWorker struct {
	natsConnection *nats.Conn
	subject        string
	notifySubject  string
	store          core.ObjectStore
	pipeline       TextPipeline
	log            *logger.Logger
}

// NewNatsWorker creates a new instance of a NATS worker. When notifySubject is
// set, every result is also published there.
func NewNatsWorker(
	natsConnection *nats.Conn,
	subject string,
	notifySubject string,
	store core.ObjectStore,
	textPipeline TextPipeline,
	log *logger.Logger,
) (*NatsWorker, error) {
	if subject == "" {
		return nil, ErrSubjectEmpty
	}

	return &NatsWorker{
		natsConnection: natsConnection,
		subject:        subject,
		notifySubject:  notifySubject,
		store:          store,
		pipeline:       textPipeline,
		log:            log,
	}, nil
}

// Run starts the worker and blocks until ctx is cancelled.
func (w *NatsWorker) Run(ctx context.Context) error {
	sub, err := w.natsConnection.Subscribe(w.subject, w.handleMessage)
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", w.subject, err)
	}

	<-ctx.Done()

	drainErr := sub.Drain()
	if drainErr != nil {
		return fmt.Errorf("failed to drain subscription: %w", drainErr)
	}

	return nil
}

func (w *NatsWorker) handleMessage(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), handleMessageTimeout)
	defer cancel()

	event, err := w.parseAndValidateEvent(msg)
	if err != nil {
		w.log.Error("Failed to parse and validate event: %v", err)

		return
	}

	replyEvent, err := w.processNormalizationJob(ctx, event)
	if err != nil {
		w.log.Error("Failed to normalize text for workflow %s: %v", event.Header.WorkflowID, err)

		return
	}

	replyData, err := json.Marshal(replyEvent)
	if err != nil {
		w.log.Error("Failed to marshal reply event for workflow %s: %v", event.Header.WorkflowID, err)

		return
	}

	if msg.Reply != "" {
		err = msg.Respond(replyData)
		if err != nil {
			w.log.Error("Failed to publish reply event for workflow %s: %v", event.Header.WorkflowID, err)
		}
	}

	if w.notifySubject != "" {
		err = w.natsConnection.Publish(w.notifySubject, replyData)
		if err != nil {
			w.log.Error("Failed to publish %s for workflow %s: %v", w.notifySubject, event.Header.WorkflowID, err)
		}
	}
}

// processNormalizationJob downloads the page, runs the pipeline and uploads the
// normalized text and the encoded result.
func (w *NatsWorker) processNormalizationJob(
	ctx context.Context,
	event *events.TextProcessedEvent,
) (*core.TextNormalizedEvent, error) {
	textData, err := w.store.Download(ctx, event.TextKey)
	if err != nil {
		return nil, fmt.Errorf("failed to download text data for key '%s': %w", event.TextKey, err)
	}

	result, err := w.pipeline.Run(string(textData))
	if err != nil {
		return nil, fmt.Errorf("failed to normalize text for key '%s': %w", event.TextKey, err)
	}

	encoded, err := pipeline.Encode(result)
	if err != nil {
		return nil, err
	}

	resultID := uuid.NewString()
	normalizedKey := resultID + normalizedKeySuffix
	pronunciationKey := resultID + pronunciationKeySuffix

	err = w.store.Upload(ctx, normalizedKey, []byte(result.Normalized))
	if err != nil {
		return nil, fmt.Errorf("failed to upload normalized text for key '%s': %w", normalizedKey, err)
	}

	err = w.store.Upload(ctx, pronunciationKey, encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to upload pronunciation for key '%s': %w", pronunciationKey, err)
	}

	w.log.Info("Normalized %s into %d words (%s)", event.TextKey, len(result.Pairs), normalizedKey)

	header := event.Header
	header.EventID = uuid.NewString()
	header.Timestamp = time.Now()

	return &core.TextNormalizedEvent{
		Header:           header,
		SourceKey:        event.TextKey,
		NormalizedKey:    normalizedKey,
		PronunciationKey: pronunciationKey,
		WordCount:        len(result.Pairs),
		PageNumber:       event.PageNumber,
		TotalPages:       event.TotalPages,
	}, nil
}

func (w *NatsWorker) parseAndValidateEvent(msg *nats.Msg) (*events.TextProcessedEvent, error) {
	var event events.TextProcessedEvent

	err := json.Unmarshal(msg.Data, &event)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if strings.TrimSpace(event.TextKey) == "" {
		return nil, ErrTextKeyEmpty
	}

	return &event, nil
}
