package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DraftStep is the state of the conversational document draft.
type DraftStep string

const (
	StepIdle       DraftStep = "IDLE"
	StepProcessing DraftStep = "PROCESSING"
	StepReview     DraftStep = "REVIEW"
	StepSaving     DraftStep = "SAVING"
)

// DraftLine is one accumulated debit/credit line. Lines are append-only:
// an extraction that repeats an account adds a new line, never merges.
type DraftLine struct {
	AccountLabel string          `json:"account_label"`
	Memo         string          `json:"memo,omitempty"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
}

// DocumentDraft is the financial document being assembled across
// conversational turns. TotalDebit and TotalCredit are derived from Lines
// after every mutation and never stored independently — that is what keeps
// them from drifting.
type DocumentDraft struct {
	Step         DraftStep       `json:"step"`
	DocumentType string          `json:"document_type,omitempty"`
	Counterpart  string          `json:"counterpart,omitempty"`
	Date         string          `json:"date"`
	Lines        []DraftLine     `json:"lines"`
	TotalDebit   decimal.Decimal `json:"total_debit"`
	TotalCredit  decimal.Decimal `json:"total_credit"`
}

// NewDraft returns the initial IDLE draft dated today.
func NewDraft() DocumentDraft {
	return DocumentDraft{
		Step:        StepIdle,
		Date:        time.Now().Format("2006-01-02"),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
}

// Balanced reports whether total debit equals total credit.
func (d DocumentDraft) Balanced() bool {
	return d.TotalDebit.Equal(d.TotalCredit)
}

// Imbalance returns |total debit - total credit|.
func (d DocumentDraft) Imbalance() decimal.Decimal {
	return d.TotalDebit.Sub(d.TotalCredit).Abs()
}

// ExtractionLine is a line contribution from one NLU extraction. Amounts
// arrive as strings, exactly as the model produced them.
type ExtractionLine struct {
	Account string `json:"account" jsonschema_description:"Display name of the account this line books against, as the user said it"`
	Memo    string `json:"memo" jsonschema_description:"Short free-text memo for the line, may be empty"`
	Debit   string `json:"debit" jsonschema_description:"Debit amount as a positive decimal string, empty if the line is a credit"`
	Credit  string `json:"credit" jsonschema_description:"Credit amount as a positive decimal string, empty if the line is a debit"`
}

// Extraction is the structured result of one voice-turn NLU call. Only the
// fields the user actually mentioned are populated.
type Extraction struct {
	DocumentType string           `json:"document_type" jsonschema_description:"Document type label if the user stated one (e.g. 'comprobante de egreso'), else empty"`
	Counterpart  string           `json:"counterpart" jsonschema_description:"Counterpart/third-party name if mentioned, else empty. Name only, no ID"`
	Date         string           `json:"date" jsonschema_description:"Document date in YYYY-MM-DD if the user gave one, else empty"`
	Lines        []ExtractionLine `json:"lines" jsonschema_description:"New lines contributed by this utterance"`
	Finalize     bool             `json:"finalize" jsonschema_description:"True if the user asked to save/finish the document"`
	Cancel       bool             `json:"cancel" jsonschema_description:"True if the user asked to cancel/discard the document"`
}

// ApplyExtraction is the draft reducer: pure, no I/O, returns the next
// draft plus a user-facing message (empty when there is nothing to say).
//
// The single most important guarantee of this package: the draft never
// transitions to SAVING while unbalanced or empty, no matter what the
// extraction says. Persisting an unbalanced accounting entry is the one
// failure this core exists to prevent.
func ApplyExtraction(d DocumentDraft, ex Extraction) (DocumentDraft, string) {
	// Cancel short-circuits everything else in the same extraction.
	if ex.Cancel {
		return NewDraft(), "Documento descartado."
	}

	if ex.DocumentType != "" {
		d.DocumentType = ex.DocumentType
		d.Step = StepReview
	}
	if ex.Counterpart != "" {
		d.Counterpart = ex.Counterpart
	}
	if ex.Date != "" {
		d.Date = ex.Date
	}

	// Copy-on-write so the caller's draft is never mutated through the
	// shared backing array.
	d.Lines = append([]DraftLine(nil), d.Lines...)
	for _, line := range ex.Lines {
		account := strings.TrimSpace(line.Account)
		debit := parseAmount(line.Debit)
		credit := parseAmount(line.Credit)
		if account == "" || (debit.IsZero() && credit.IsZero()) {
			continue
		}
		d.Lines = append(d.Lines, DraftLine{
			AccountLabel: account,
			Memo:         strings.TrimSpace(line.Memo),
			Debit:        debit,
			Credit:       credit,
		})
	}

	// Totals are recomputed from the lines unconditionally, on every
	// mutation path.
	d.TotalDebit, d.TotalCredit = sumLines(d.Lines)

	if ex.Finalize {
		if len(d.Lines) == 0 {
			return d, "No hay líneas en el documento, nada que guardar."
		}
		if !d.Balanced() {
			d.Step = StepReview
			return d, fmt.Sprintf(
				"El documento no está balanceado (diferencia de %s). Débitos %s, créditos %s.",
				d.Imbalance(), d.TotalDebit, d.TotalCredit)
		}
		d.Step = StepSaving
		return d, "Documento balanceado, guardando."
	}

	return d, ""
}

// sumLines derives the totals. Kept separate so every mutation path shares
// the same arithmetic.
func sumLines(lines []DraftLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// parseAmount tolerates the usual model formatting noise: empty, "null",
// thousands separators. Unparseable amounts become zero so the line is
// dropped rather than corrupting the draft.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", "")
	amt, err := decimal.NewFromString(s)
	if err != nil || amt.IsNegative() {
		return decimal.Zero
	}
	return amt
}
