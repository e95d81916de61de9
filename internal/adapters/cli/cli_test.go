package cli_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"finaxis-assistant/internal/adapters/cli"
	"finaxis-assistant/internal/app"
	"finaxis-assistant/internal/core"
	"finaxis-assistant/internal/speech"
)

const watchdogTimeout = 30 * time.Millisecond

// voiceRecorder stubs the one service method the dictation loop calls.
type voiceRecorder struct {
	app.ApplicationService
	turns []string
}

func (v *voiceRecorder) ApplyVoiceTurn(_ context.Context, sessionID, text string) (*app.VoiceTurnResult, error) {
	v.turns = append(v.turns, text)
	return &app.VoiceTurnResult{SessionID: sessionID, Draft: core.NewDraft()}, nil
}

func TestListen_SubmitsOnSilenceAndFlushesOnEOF(t *testing.T) {
	svc := &voiceRecorder{}
	session := speech.NewSessionWithTimeout(watchdogTimeout)
	pr, pw := io.Pipe()
	var out bytes.Buffer

	done := make(chan struct{})
	go func() {
		cli.Listen(context.Background(), svc, "s1", session, pr, &out)
		close(done)
	}()

	// Two partials in quick succession, then silence: the watchdog submits
	// only the last one.
	_, _ = io.WriteString(pw, "débito a caja\n")
	_, _ = io.WriteString(pw, "débito a caja por cien\n")
	time.Sleep(5 * watchdogTimeout)

	// A trailing utterance cut off by end of input is flushed, not lost.
	_, _ = io.WriteString(pw, "guardar\n")
	_ = pw.Close()
	<-done

	want := []string{"débito a caja por cien", "guardar"}
	if len(svc.turns) != len(want) {
		t.Fatalf("turns = %v, want %v", svc.turns, want)
	}
	for i := range want {
		if svc.turns[i] != want[i] {
			t.Errorf("turn[%d] = %q, want %q", i, svc.turns[i], want[i])
		}
	}
	if !strings.Contains(out.String(), "session_id") {
		t.Errorf("turn results should be printed, got %q", out.String())
	}
}

func TestListen_CanceledContextReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	session := speech.NewSessionWithTimeout(time.Hour)
	pr, _ := io.Pipe()

	done := make(chan struct{})
	go func() {
		cli.Listen(ctx, &voiceRecorder{}, "s1", session, pr, io.Discard)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listen did not return on context cancellation")
	}
}
