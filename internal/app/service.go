package app

import (
	"context"

	"finaxis-assistant/internal/core"
)

// ApplicationService is the single interface all UI adapters (CLI, Web)
// call. It decouples presentation from the command core. Implementations
// must contain no fmt.Println, no ANSI codes, and no display logic.
type ApplicationService interface {
	// InterpretCommand turns one free-text command into a routing
	// decision. Literal ":" commands never reach the NLU. Successfully
	// interpreted commands are recorded in the history.
	InterpretCommand(ctx context.Context, text string) (*CommandResult, error)

	// ApplyVoiceTurn feeds one voice utterance into the session's
	// document draft. An NLU failure resets the draft to IDLE with an
	// apologetic message rather than returning an error — the user must
	// never be left believing unsaved progress exists.
	ApplyVoiceTurn(ctx context.Context, sessionID, text string) (*VoiceTurnResult, error)

	// GetDraft returns the session's current draft (a fresh IDLE draft
	// for unknown sessions).
	GetDraft(ctx context.Context, sessionID string) (*VoiceTurnResult, error)

	// CancelDraft resets the session's draft to IDLE, discarding all
	// accumulated lines unconditionally.
	CancelDraft(ctx context.Context, sessionID string) (*VoiceTurnResult, error)

	// SearchNavigation queries the static navigation index.
	SearchNavigation(ctx context.Context, query string, limit int) (*SearchResult, error)

	// ResolveAccount fuzzily resolves a free-text account reference
	// against the company's chart of accounts. The top candidate is the
	// resolution; the runners-up are disambiguation hints.
	ResolveAccount(ctx context.Context, companyCode, query string) (*ResolveResult, error)

	// ListHistory returns the recent commands, newest first.
	ListHistory(ctx context.Context) (*HistoryResult, error)

	// ClearHistory empties the recent-command list.
	ClearHistory(ctx context.Context) error

	// ListLibrary returns all saved commands.
	ListLibrary(ctx context.Context) (*LibraryResult, error)

	// CreateLibraryEntry saves a named command and returns the refreshed
	// list. Every library mutation is followed by a full re-list.
	CreateLibraryEntry(ctx context.Context, titulo, comando string) (*LibraryResult, error)

	// UpdateLibraryEntry rewrites a saved command and returns the
	// refreshed list.
	UpdateLibraryEntry(ctx context.Context, id int, titulo, comando string) (*LibraryResult, error)

	// DeleteLibraryEntry removes a saved command and returns the
	// refreshed list.
	DeleteLibraryEntry(ctx context.Context, id int) (*LibraryResult, error)
}

// AccountSource supplies the chart of accounts for resolution.
type AccountSource interface {
	ListAccounts(ctx context.Context, companyCode string) ([]core.Account, error)
}
