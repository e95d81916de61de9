package core_test

import (
	"strings"
	"testing"

	"finaxis-assistant/internal/core"

	"github.com/shopspring/decimal"
)

func line(account, debit, credit string) core.ExtractionLine {
	return core.ExtractionLine{Account: account, Debit: debit, Credit: credit}
}

func TestNewDraft(t *testing.T) {
	d := core.NewDraft()
	if d.Step != core.StepIdle {
		t.Errorf("step = %s, want IDLE", d.Step)
	}
	if d.Date == "" {
		t.Error("new draft should default its date to today")
	}
	if !d.TotalDebit.IsZero() || !d.TotalCredit.IsZero() {
		t.Error("new draft totals must be zero")
	}
}

func TestApplyExtraction_DocumentTypeMovesToReview(t *testing.T) {
	d := core.NewDraft()
	d, _ = core.ApplyExtraction(d, core.Extraction{DocumentType: "comprobante de egreso"})
	if d.Step != core.StepReview {
		t.Errorf("step = %s, want REVIEW", d.Step)
	}
	if d.DocumentType != "comprobante de egreso" {
		t.Errorf("document type = %q", d.DocumentType)
	}
}

func TestApplyExtraction_LinesAppendNeverMerge(t *testing.T) {
	d := core.NewDraft()
	d, _ = core.ApplyExtraction(d, core.Extraction{Lines: []core.ExtractionLine{line("Caja", "100", "")}})
	d, _ = core.ApplyExtraction(d, core.Extraction{Lines: []core.ExtractionLine{line("Caja", "50", "")}})

	if len(d.Lines) != 2 {
		t.Fatalf("lines = %d, want 2 (repeat account appends, never merges)", len(d.Lines))
	}
	if !d.TotalDebit.Equal(decimal.RequireFromString("150")) {
		t.Errorf("total debit = %s, want 150", d.TotalDebit)
	}
}

// The invariant: totals always equal the sums of the current lines, after
// any sequence of extractions.
func TestApplyExtraction_TotalsAlwaysDerived(t *testing.T) {
	extractions := []core.Extraction{
		{DocumentType: "nota de contabilidad"},
		{Lines: []core.ExtractionLine{line("Caja", "100.50", "")}},
		{Counterpart: "Proveedor XYZ"},
		{Lines: []core.ExtractionLine{line("Bancos", "", "30"), line("Ventas", "", "70.50")}},
		{Date: "2025-03-15"},
	}

	d := core.NewDraft()
	for _, ex := range extractions {
		d, _ = core.ApplyExtraction(d, ex)

		wantDebit, wantCredit := decimal.Zero, decimal.Zero
		for _, l := range d.Lines {
			wantDebit = wantDebit.Add(l.Debit)
			wantCredit = wantCredit.Add(l.Credit)
		}
		if !d.TotalDebit.Equal(wantDebit) || !d.TotalCredit.Equal(wantCredit) {
			t.Fatalf("totals drifted: %s/%s vs lines %s/%s",
				d.TotalDebit, d.TotalCredit, wantDebit, wantCredit)
		}
	}
}

func TestApplyExtraction_FinalizeUnbalancedRefused(t *testing.T) {
	d := core.NewDraft()
	d, _ = core.ApplyExtraction(d, core.Extraction{
		DocumentType: "nota",
		Lines:        []core.ExtractionLine{line("Caja", "100", "")},
	})

	d, msg := core.ApplyExtraction(d, core.Extraction{Finalize: true})
	if d.Step == core.StepSaving {
		t.Fatal("unbalanced draft must never reach SAVING")
	}
	if d.Step != core.StepReview {
		t.Errorf("step = %s, want REVIEW", d.Step)
	}
	if !strings.Contains(msg, "100") {
		t.Errorf("message should state the imbalance of 100, got %q", msg)
	}
}

func TestApplyExtraction_FinalizeBalanced(t *testing.T) {
	d := core.NewDraft()
	d, _ = core.ApplyExtraction(d, core.Extraction{
		DocumentType: "nota",
		Lines: []core.ExtractionLine{
			line("Caja", "100", "0"),
			line("Ventas", "0", "100"),
		},
	})

	d, _ = core.ApplyExtraction(d, core.Extraction{Finalize: true})
	if d.Step != core.StepSaving {
		t.Errorf("balanced finalize should reach SAVING, got %s", d.Step)
	}
}

func TestApplyExtraction_FinalizeEmptyDraft(t *testing.T) {
	d, msg := core.ApplyExtraction(core.NewDraft(), core.Extraction{Finalize: true})
	if d.Step == core.StepSaving {
		t.Fatal("empty draft must not reach SAVING")
	}
	if msg == "" {
		t.Error("empty finalize needs a user-facing message")
	}
}

// Cancel wins over everything else in the same extraction.
func TestApplyExtraction_CancelShortCircuits(t *testing.T) {
	d := core.NewDraft()
	d, _ = core.ApplyExtraction(d, core.Extraction{
		DocumentType: "nota",
		Lines:        []core.ExtractionLine{line("Caja", "100", ""), line("Ventas", "", "100")},
	})

	d, _ = core.ApplyExtraction(d, core.Extraction{
		Cancel:   true,
		Finalize: true,
		Lines:    []core.ExtractionLine{line("Bancos", "999", "")},
	})
	if d.Step != core.StepIdle {
		t.Errorf("cancel should reset to IDLE, got %s", d.Step)
	}
	if len(d.Lines) != 0 || d.DocumentType != "" {
		t.Errorf("cancel should clear the draft: %+v", d)
	}
}

func TestApplyExtraction_Pure(t *testing.T) {
	d := core.NewDraft()
	d, _ = core.ApplyExtraction(d, core.Extraction{Lines: []core.ExtractionLine{line("Caja", "100", "")}})

	before := len(d.Lines)
	next, _ := core.ApplyExtraction(d, core.Extraction{Lines: []core.ExtractionLine{line("Bancos", "", "100")}})

	if len(d.Lines) != before {
		t.Error("input draft mutated by ApplyExtraction")
	}
	if len(next.Lines) != before+1 {
		t.Errorf("next draft lines = %d, want %d", len(next.Lines), before+1)
	}
}

func TestApplyExtraction_GarbageAmountsDropped(t *testing.T) {
	d := core.NewDraft()
	d, _ = core.ApplyExtraction(d, core.Extraction{Lines: []core.ExtractionLine{
		line("Caja", "null", ""),
		line("", "100", ""),
		line("Bancos", "-50", ""),
		line("Ventas", "1,000.00", ""),
	}})
	if len(d.Lines) != 1 {
		t.Fatalf("lines = %d, want only the parseable one", len(d.Lines))
	}
	if !d.TotalDebit.Equal(decimal.RequireFromString("1000.00")) {
		t.Errorf("total debit = %s, want 1000.00", d.TotalDebit)
	}
}
