package sigscan

import (
	"crypto/rand"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/signalworks/sigscan/pkg/sigscan/sink"
)

const statusPendingReview = "Pending Review"

// DebtQueueRow converts a signal into the debt-queue sheet layout. The
// source URL lands in column K, the dedup key column for this layout.
func DebtQueueRow(sig Signal, queueID string) sink.Row {
	return sink.Row{
		Key: sig.SourceURL,
		Cells: []string{
			queueID,
			DebtAgentName,
			sig.CompanyName,
			sig.SignalType,
			sig.SignalDescription,
			strconv.Itoa(sig.RelevanceScore),
			statusPendingReview,
			sig.DetectedDate,
			"", // action required
			"", // assigned to
			sig.SourceURL,
		},
	}
}

// RegionalRow converts a signal into the regional-monitor sheet layout.
// The source URL lands in column E, the dedup key column for this layout.
func RegionalRow(sig Signal, ts time.Time) sink.Row {
	return sink.Row{
		Key: sig.SourceURL,
		Cells: []string{
			ts.Format("2006-01-02 15:04:05"),
			sig.CompanyName,
			sig.SignalType,
			sig.SignalDescription,
			sig.SourceURL,
			sig.DetectedDate,
			RegionalAgentName,
			statusPendingReview,
			"", // notes
			strconv.Itoa(sig.RelevanceScore),
		},
	}
}

// queueIDs mints sortable queue row identifiers.
type queueIDs struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newQueueIDs() *queueIDs {
	return &queueIDs{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (q *queueIDs) next() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return ulid.MustNew(ulid.Now(), q.entropy).String()
}
