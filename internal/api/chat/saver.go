package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chatwidgetai/widget-relay/internal/loaders"
	"github.com/chatwidgetai/widget-relay/internal/utils"
)

type messageSaver struct {
	db            *loaders.PostgresClient
	ch            chan loaders.MessageRow
	batchSize     int
	flushInterval time.Duration
	stopCh        chan struct{}
	stoppedCh     chan struct{}
}

var (
	msgSaver     *messageSaver
	msgSaverOnce sync.Once
)

const (
	defaultMsgBatchSize    = 200
	defaultFlushInterval   = 500 * time.Millisecond
	defaultChannelCapacity = 4096
)

func initMessageSaver(db *loaders.PostgresClient) {
	msgSaverOnce.Do(func() {
		msgSaver = &messageSaver{
			db:            db,
			ch:            make(chan loaders.MessageRow, defaultChannelCapacity),
			batchSize:     defaultMsgBatchSize,
			flushInterval: defaultFlushInterval,
			stopCh:        make(chan struct{}),
			stoppedCh:     make(chan struct{}),
		}
		go msgSaver.run()
	})
}

func (w *messageSaver) run() {
	defer close(w.stoppedCh)
	batch := make([]loaders.MessageRow, 0, w.batchSize)
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := w.db.BatchInsertMessages(ctx, batch); err != nil {
			utils.Zlog.Error("Failed to batch insert messages", zap.Error(err), zap.Int("count", len(batch)))
		}
		batch = batch[:0]
	}

	for {
		select {
		case row := <-w.ch:
			batch = append(batch, row)
			if len(batch) >= w.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-w.stopCh:
			// Drain channel
			for {
				select {
				case row := <-w.ch:
					batch = append(batch, row)
					if len(batch) >= w.batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// StopMessageSaver gracefully stops the message saver
func StopMessageSaver() {
	if msgSaver == nil {
		return
	}
	close(msgSaver.stopCh)
	<-msgSaver.stoppedCh
}

// saveConversationTurns enqueues the user and assistant turns of one exchange
// for batched insertion. Never blocks the request path: a full queue falls
// back to a direct insert on its own goroutine.
func saveConversationTurns(db *loaders.PostgresClient, sessionID, userText, assistantText string) {
	initMessageSaver(db)

	now := time.Now().UTC()
	rows := []loaders.MessageRow{
		{Role: "user", Content: userText, SessionID: sessionID, CreatedAt: now},
		{Role: "assistant", Content: assistantText, SessionID: sessionID, CreatedAt: now},
	}

	for _, row := range rows {
		id, err := uuid.NewV7()
		if err != nil {
			utils.Zlog.Error("Failed to generate message id", zap.Error(err))
			return
		}
		row.UniqueMsgID = id.String()

		select {
		case msgSaver.ch <- row:
			// enqueued
		default:
			// queue full: fallback to direct insert asynchronously
			go func(r loaders.MessageRow) {
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				_ = db.BatchInsertMessages(ctx, []loaders.MessageRow{r})
			}(row)
		}
	}
}
