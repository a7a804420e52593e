// Package worker_test tests the NATS worker for the nsw-normalizer.
package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/book-expert/events"
	"github.com/book-expert/logger"
	"github.com/book-expert/nsw-normalizer/internal/core"
	"github.com/book-expert/nsw-normalizer/internal/lexicon"
	"github.com/book-expert/nsw-normalizer/internal/nsw"
	"github.com/book-expert/nsw-normalizer/internal/pipeline"
	"github.com/book-expert/nsw-normalizer/internal/pronounce"
	"github.com/book-expert/nsw-normalizer/internal/segment"
	"github.com/book-expert/nsw-normalizer/internal/worker"
	"github.com/google/uuid"
	"github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSubject   = "text.processed"
	notifySubject = "text.normalized"
	sourceText    = "Dr. Smith paid $5."
)

var (
	errMockDownload = errors.New("mock download error")
	errMockUpload   = errors.New("mock upload error")
)

// mockObjectStore is a mock implementation of the ObjectStore interface.
type mockObjectStore struct {
	mu                 sync.Mutex
	downloadShouldFail bool
	uploadShouldFail   bool
	downloadedKey      string
	uploads            map[string][]byte
}

func (m *mockObjectStore) Download(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.downloadShouldFail {
		return nil, errMockDownload
	}

	m.downloadedKey = key

	return []byte(sourceText), nil
}

func (m *mockObjectStore) Upload(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.uploadShouldFail {
		return errMockUpload
	}

	m.uploads[key] = data

	return nil
}

func (m *mockObjectStore) uploaded(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.uploads[key]

	return data, ok
}

func createTestNatsClient(t *testing.T) *nats.Conn {
	t.Helper()

	opts := test.DefaultTestOptions
	opts.Port = -1 // Use a random port
	server := test.RunServer(&opts)

	natsConnection, err := nats.Connect(server.ClientURL())
	if err != nil {
		t.Fatalf("Failed to connect to test NATS server: %v", err)
	}

	t.Cleanup(func() {
		natsConnection.Close()
		server.Shutdown()
	})

	return natsConnection
}

func newTestPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()

	dictionary := lexicon.Default()

	splitter, err := segment.New(dictionary, segment.DefaultCacheSize)
	require.NoError(t, err)

	return pipeline.New(nsw.New(dictionary, splitter), pronounce.New(dictionary))
}

func setupTest(t *testing.T, store *mockObjectStore) (*worker.NatsWorker, *nats.Conn) {
	t.Helper()

	natsConnection := createTestNatsClient(t)

	testLogger, err := logger.New(t.TempDir(), "test-log.log")
	require.NoError(t, err)

	workerInstance, err := worker.NewNatsWorker(
		natsConnection, testSubject, notifySubject, store, newTestPipeline(t), testLogger,
	)
	require.NoError(t, err)

	return workerInstance, natsConnection
}

func startWorker(t *testing.T, workerInstance *worker.NatsWorker, natsConnection *nats.Conn) func() {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	baseline := natsConnection.NumSubscriptions()

	go func() {
		errChan <- workerInstance.Run(ctx)
	}()

	// SUB and the following PUB share the connection, so the server sees them in order.
	require.Eventually(t, func() bool {
		return natsConnection.NumSubscriptions() > baseline
	}, 2*time.Second, 10*time.Millisecond)

	return func() {
		cancel()
		assert.NoError(t, <-errChan, "worker.Run should not error on graceful shutdown")
	}
}

func newTestEvent() *events.TextProcessedEvent {
	return &events.TextProcessedEvent{
		Header: events.EventHeader{
			Timestamp:  time.Now(),
			WorkflowID: uuid.NewString(),
			EventID:    uuid.NewString(),
			UserID:     "user",
			TenantID:   "tenant",
		},
		TextKey:    "page-0003.txt",
		PageNumber: 3,
		TotalPages: 10,
	}
}

func TestNewNatsWorker_EmptySubject(t *testing.T) {
	t.Parallel()

	_, err := worker.NewNatsWorker(nil, "", "", nil, nil, nil)
	require.ErrorIs(t, err, worker.ErrSubjectEmpty)
}

func TestMessageHandler_Success(t *testing.T) {
	t.Parallel()

	store := &mockObjectStore{uploads: make(map[string][]byte)}
	workerInstance, natsConnection := setupTest(t, store)

	notifications, err := natsConnection.SubscribeSync(notifySubject)
	require.NoError(t, err)

	stop := startWorker(t, workerInstance, natsConnection)
	defer stop()

	testEvent := newTestEvent()
	eventData, err := json.Marshal(testEvent)
	require.NoError(t, err)

	replyMsg, err := natsConnection.Request(testSubject, eventData, 5*time.Second)
	require.NoError(t, err, "Request should succeed and receive a reply")

	var replyEvent core.TextNormalizedEvent

	require.NoError(t, json.Unmarshal(replyMsg.Data, &replyEvent))

	assert.Equal(t, testEvent.Header.WorkflowID, replyEvent.Header.WorkflowID)
	assert.Equal(t, testEvent.Header.TenantID, replyEvent.Header.TenantID)
	assert.NotEqual(t, testEvent.Header.EventID, replyEvent.Header.EventID)
	assert.Equal(t, "page-0003.txt", replyEvent.SourceKey)
	assert.Equal(t, 3, replyEvent.PageNumber)
	assert.Equal(t, 10, replyEvent.TotalPages)
	assert.Equal(t, 7, replyEvent.WordCount)

	store.mu.Lock()
	assert.Equal(t, "page-0003.txt", store.downloadedKey)
	store.mu.Unlock()

	normalized, ok := store.uploaded(replyEvent.NormalizedKey)
	require.True(t, ok, "normalized text should be uploaded")
	assert.Equal(t, "Doctor Smith paid five dollars zero cents", string(normalized))

	encoded, ok := store.uploaded(replyEvent.PronunciationKey)
	require.True(t, ok, "pronunciation result should be uploaded")

	result, err := pipeline.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, string(normalized), result.Normalized)
	require.Len(t, result.Pairs, 7)
	assert.Equal(t, "D AA1 K T ER0", result.Pairs[0].Pronunciation)

	notification, err := notifications.NextMsg(5 * time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, string(replyMsg.Data), string(notification.Data))
}

func TestMessageHandler_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		store *mockObjectStore
		data  func() []byte
	}{
		{
			name:  "download fails",
			store: &mockObjectStore{downloadShouldFail: true, uploads: make(map[string][]byte)},
			data:  mustMarshal(newTestEvent()),
		},
		{
			name:  "upload fails",
			store: &mockObjectStore{uploadShouldFail: true, uploads: make(map[string][]byte)},
			data:  mustMarshal(newTestEvent()),
		},
		{
			name:  "malformed event",
			store: &mockObjectStore{uploads: make(map[string][]byte)},
			data:  func() []byte { return []byte("{not json") },
		},
		{
			name:  "missing text key",
			store: &mockObjectStore{uploads: make(map[string][]byte)},
			data: func() []byte {
				event := newTestEvent()
				event.TextKey = " "

				return mustMarshal(event)()
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			workerInstance, natsConnection := setupTest(t, testCase.store)

			stop := startWorker(t, workerInstance, natsConnection)
			defer stop()

			_, err := natsConnection.Request(testSubject, testCase.data(), 500*time.Millisecond)
			require.ErrorIs(t, err, nats.ErrTimeout, "failed jobs are not answered")
		})
	}
}

func mustMarshal(event *events.TextProcessedEvent) func() []byte {
	return func() []byte {
		data, err := json.Marshal(event)
		if err != nil {
			panic(err)
		}

		return data
	}
}
