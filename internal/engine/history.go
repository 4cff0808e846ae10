package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/danieljhkim/themereset/internal/persist"
)

// History lists journal entries, newest first.
func (e *Engine) History(ctx context.Context, req *HistoryRequest) (*HistoryResult, error) {
	if e.journal == nil {
		return &HistoryResult{Entries: []*persist.Entry{}}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.ID != "" {
		entry, err := e.journal.Get(req.ID)
		if err != nil {
			if errors.Is(err, persist.ErrEntryNotFound) {
				return nil, fmt.Errorf("%w: journal entry %s", ErrNotFound, req.ID)
			}
			return nil, err
		}
		return &HistoryResult{Entries: []*persist.Entry{entry}}, nil
	}

	if req.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrValidation)
	}
	entries, err := e.journal.List(req.Limit)
	if err != nil {
		return nil, err
	}
	return &HistoryResult{Entries: entries}, nil
}
