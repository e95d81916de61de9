package core

import (
	"sort"
	"strings"
)

// Scoring weights for ResolveAccounts. Additive: several rules may fire for
// the same candidate.
const (
	scoreExactMatch   = 100 // normalized query equals name or code (each)
	scoreNameContains = 50  // normalized name contains the full query
	scoreWordHit      = 10  // a significant query word appears in name or code
	scoreSingularHit  = 8   // word matches after stripping a trailing "s"
	scoreLeafBoost    = 25  // bookable leaf account, preferred over groups
)

// ScoredAccount is a transient resolver result. Never persisted.
type ScoredAccount struct {
	Account Account `json:"account"`
	Score   int     `json:"score"`
}

// ResolveAccounts scores candidates against a free-text query and returns
// them sorted by score descending; ties go to the longer display name (the
// more specific match), further ties keep candidate order. Candidates that
// score zero are dropped. An empty query resolves to nothing.
//
// The caller treats index 0 as the resolution and should surface the top
// few entries as a disambiguation hint — resolution never blocks on
// ambiguity, it always picks a best guess.
func ResolveAccounts(query string, candidates []Account) []ScoredAccount {
	nq := strings.TrimSpace(Normalize(query))
	if nq == "" {
		return nil
	}
	words := SignificantWords(nq)

	var out []ScoredAccount
	for _, acc := range candidates {
		name := Normalize(acc.Name)
		code := Normalize(acc.Code)

		score := 0
		if nq == name {
			score += scoreExactMatch
		}
		if nq == code {
			score += scoreExactMatch
		}
		if strings.Contains(name, nq) {
			score += scoreNameContains
		}
		for _, w := range words {
			switch {
			case strings.Contains(name, w) || strings.Contains(code, w):
				score += scoreWordHit
			case len(w) > 3 && strings.HasSuffix(w, "s"):
				// Naive singular fallback: "ventas" should still hit "venta".
				singular := strings.TrimSuffix(w, "s")
				if strings.Contains(name, singular) || strings.Contains(code, singular) {
					score += scoreSingularHit
				}
			}
		}
		if score > 0 && acc.Leaf {
			score += scoreLeafBoost
		}

		if score > 0 {
			out = append(out, ScoredAccount{Account: acc, Score: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return len(out[i].Account.Name) > len(out[j].Account.Name)
	})
	return out
}
