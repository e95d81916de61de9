package app

import (
	"context"
	"fmt"
	"strings"

	"finaxis-assistant/internal/ai"
	"finaxis-assistant/internal/core"
	"finaxis-assistant/internal/history"
	"finaxis-assistant/internal/library"
)

// maxResolveHints caps the disambiguation hints surfaced to the user.
const maxResolveHints = 3

// LibraryStore is the saved-command persistence. *library.Service is the
// production implementation.
type LibraryStore interface {
	List(ctx context.Context) ([]library.Entry, error)
	Create(ctx context.Context, titulo, comando string) (*library.Entry, error)
	Update(ctx context.Context, id int, titulo, comando string) error
	Delete(ctx context.Context, id int) error
}

type appService struct {
	agent    ai.AgentService
	router   *core.Router
	index    []core.SearchableItem
	hist     history.Store
	lib      LibraryStore
	accounts AccountSource
	drafts   *draftSessions
}

// NewAppService constructs an appService that satisfies ApplicationService.
// lib and accounts may be nil when running without a database; the
// corresponding operations then report that the backend is unavailable.
func NewAppService(
	agent ai.AgentService,
	router *core.Router,
	index []core.SearchableItem,
	hist history.Store,
	lib LibraryStore,
	accounts AccountSource,
) ApplicationService {
	return &appService{
		agent:    agent,
		router:   router,
		index:    index,
		hist:     hist,
		lib:      lib,
		accounts: accounts,
		drafts:   newDraftSessions(),
	}
}

// InterpretCommand routes one free-text command.
func (s *appService) InterpretCommand(ctx context.Context, text string) (*CommandResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		// Input error: no-op, no history entry.
		return &CommandResult{Decision: core.RouteDecision{
			Kind:    core.RouteUnhandled,
			Message: "Escribe o dicta un comando.",
		}}, nil
	}

	var tc *core.ToolCall
	if !strings.HasPrefix(trimmed, core.CommandPrefix) {
		var err error
		tc, err = s.agent.InterpretCommand(ctx, trimmed)
		if err != nil {
			return nil, fmt.Errorf("nlu call failed: %w", err)
		}
	}

	decision := s.router.Route(tc, trimmed)
	if decision.Kind == core.RouteNavigate && tc != nil {
		// Only interpreted free-text commands enter the history; ":"
		// literals stay out. History is a convenience, never fail the
		// command over it.
		_ = history.Record(ctx, s.hist, trimmed)
	}
	return &CommandResult{Decision: decision}, nil
}

// ApplyVoiceTurn feeds one utterance into the session's draft.
func (s *appService) ApplyVoiceTurn(ctx context.Context, sessionID, text string) (*VoiceTurnResult, error) {
	if strings.TrimSpace(text) == "" {
		return s.GetDraft(ctx, sessionID)
	}

	draft, ok := s.drafts.acquire(sessionID)
	if !ok {
		draft.Step = core.StepProcessing
		return &VoiceTurnResult{
			SessionID: sessionID,
			Draft:     draft,
			Message:   "Todavía estoy procesando la instrucción anterior.",
		}, nil
	}

	extraction, err := s.agent.ExtractDraftFields(ctx, text, draft)
	if err != nil {
		// Upstream failure: back to IDLE, never to REVIEW — nothing was
		// captured, the draft must not imply otherwise.
		fresh := core.NewDraft()
		s.drafts.release(sessionID, fresh)
		return &VoiceTurnResult{
			SessionID: sessionID,
			Draft:     fresh,
			Message:   "Lo siento, no pude procesar la instrucción. Intenta de nuevo.",
		}, nil
	}

	next, msg := core.ApplyExtraction(draft, *extraction)
	s.drafts.release(sessionID, next)
	return &VoiceTurnResult{SessionID: sessionID, Draft: next, Message: msg}, nil
}

// GetDraft returns the session's current draft.
func (s *appService) GetDraft(_ context.Context, sessionID string) (*VoiceTurnResult, error) {
	return &VoiceTurnResult{SessionID: sessionID, Draft: s.drafts.get(sessionID)}, nil
}

// CancelDraft discards the session's draft unconditionally.
func (s *appService) CancelDraft(_ context.Context, sessionID string) (*VoiceTurnResult, error) {
	draft := s.drafts.reset(sessionID)
	return &VoiceTurnResult{
		SessionID: sessionID,
		Draft:     draft,
		Message:   "Documento descartado.",
	}, nil
}

// SearchNavigation queries the static navigation index.
func (s *appService) SearchNavigation(_ context.Context, query string, limit int) (*SearchResult, error) {
	return &SearchResult{Items: core.Search(s.index, query, limit)}, nil
}

// ResolveAccount fuzzily resolves an account reference.
func (s *appService) ResolveAccount(ctx context.Context, companyCode, query string) (*ResolveResult, error) {
	if s.accounts == nil {
		return nil, fmt.Errorf("chart of accounts unavailable: no database configured")
	}
	candidates, err := s.accounts.ListAccounts(ctx, companyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}

	scored := core.ResolveAccounts(query, candidates)
	result := &ResolveResult{}
	if len(scored) > 0 {
		result.Best = &scored[0]
		hints := scored
		if len(hints) > maxResolveHints {
			hints = hints[:maxResolveHints]
		}
		result.Hints = hints
	}
	return result, nil
}

// ListHistory returns the recent commands, newest first.
func (s *appService) ListHistory(ctx context.Context) (*HistoryResult, error) {
	commands, err := history.List(ctx, s.hist)
	if err != nil {
		return nil, err
	}
	return &HistoryResult{Commands: commands}, nil
}

// ClearHistory empties the recent-command list.
func (s *appService) ClearHistory(ctx context.Context) error {
	return history.Clear(ctx, s.hist)
}

// ListLibrary returns all saved commands.
func (s *appService) ListLibrary(ctx context.Context) (*LibraryResult, error) {
	if s.lib == nil {
		return nil, fmt.Errorf("command library unavailable: no database configured")
	}
	entries, err := s.lib.List(ctx)
	if err != nil {
		return nil, err
	}
	return &LibraryResult{Entries: entries}, nil
}

// CreateLibraryEntry saves a named command, then re-lists.
func (s *appService) CreateLibraryEntry(ctx context.Context, titulo, comando string) (*LibraryResult, error) {
	if s.lib == nil {
		return nil, fmt.Errorf("command library unavailable: no database configured")
	}
	if _, err := s.lib.Create(ctx, titulo, comando); err != nil {
		return nil, err
	}
	return s.ListLibrary(ctx)
}

// UpdateLibraryEntry rewrites a saved command, then re-lists.
func (s *appService) UpdateLibraryEntry(ctx context.Context, id int, titulo, comando string) (*LibraryResult, error) {
	if s.lib == nil {
		return nil, fmt.Errorf("command library unavailable: no database configured")
	}
	if err := s.lib.Update(ctx, id, titulo, comando); err != nil {
		return nil, err
	}
	return s.ListLibrary(ctx)
}

// DeleteLibraryEntry removes a saved command, then re-lists.
func (s *appService) DeleteLibraryEntry(ctx context.Context, id int) (*LibraryResult, error) {
	if s.lib == nil {
		return nil, fmt.Errorf("command library unavailable: no database configured")
	}
	if err := s.lib.Delete(ctx, id); err != nil {
		return nil, err
	}
	return s.ListLibrary(ctx)
}
