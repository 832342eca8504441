package core

import (
	"context"

	"evolve/internal/journal"
)

// JournalAuditRecorder appends audit entries to a journal store. Store
// failures are logged and never interrupt the board.
type JournalAuditRecorder struct {
	store  journal.Store
	logger Logger
}

// NewJournalAuditRecorder wraps store. A nil logger discards failures.
func NewJournalAuditRecorder(store journal.Store, logger Logger) *JournalAuditRecorder {
	if logger == nil {
		logger = noopLogger{}
	}
	return &JournalAuditRecorder{store: store, logger: logger}
}

// Record implements AuditRecorder.
func (r *JournalAuditRecorder) Record(ctx context.Context, entry AuditEntry) {
	if err := r.store.Append(ctx, entry); err != nil {
		r.logger.Warn("journal append failed", "driver", string(r.store.Driver()), "operation", entry.Operation, "error", err)
	}
}

// Store returns the wrapped journal.
func (r *JournalAuditRecorder) Store() journal.Store { return r.store }
