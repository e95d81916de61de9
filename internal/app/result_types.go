package app

import (
	"finaxis-assistant/internal/core"
	"finaxis-assistant/internal/library"
)

// CommandResult is returned by InterpretCommand.
type CommandResult struct {
	Decision core.RouteDecision `json:"decision"`
}

// VoiceTurnResult is returned by the draft operations. Message carries the
// user-facing feedback for the turn ("documento descartado", the imbalance
// warning, the NLU apology) and is empty when there is nothing to say.
type VoiceTurnResult struct {
	SessionID string             `json:"session_id"`
	Draft     core.DocumentDraft `json:"draft"`
	Message   string             `json:"message,omitempty"`
}

// SearchResult is returned by SearchNavigation.
type SearchResult struct {
	Items []core.SearchableItem `json:"items"`
}

// ResolveResult is returned by ResolveAccount. Best is nil when nothing
// scored; Hints holds up to the top 3 candidates, Best included.
type ResolveResult struct {
	Best  *core.ScoredAccount  `json:"best,omitempty"`
	Hints []core.ScoredAccount `json:"hints,omitempty"`
}

// HistoryResult is returned by ListHistory.
type HistoryResult struct {
	Commands []string `json:"commands"`
}

// LibraryResult is returned by the library operations: always the full,
// freshly listed collection.
type LibraryResult struct {
	Entries []library.Entry `json:"entries"`
}
