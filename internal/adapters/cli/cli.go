// Package cli is the one-shot command adapter, mainly for smoke-testing
// the assistant without the web front end.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"finaxis-assistant/internal/app"
	"finaxis-assistant/internal/speech"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	if len(args) == 0 {
		usage()
	}

	switch args[0] {
	case "command", "cmd", "c":
		if len(args) < 2 {
			log.Fatal(`Usage: app command "<text>"`)
		}
		result, err := svc.InterpretCommand(ctx, args[1])
		if err != nil {
			log.Fatalf("Interpretation failed: %v", err)
		}
		printJSON(result)

	case "search", "s":
		if len(args) < 2 {
			log.Fatal(`Usage: app search "<text>"`)
		}
		result, err := svc.SearchNavigation(ctx, args[1], 0)
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		printJSON(result)

	case "resolve", "r":
		if len(args) < 3 {
			log.Fatal(`Usage: app resolve <company_code> "<account text>"`)
		}
		result, err := svc.ResolveAccount(ctx, args[1], args[2])
		if err != nil {
			log.Fatalf("Resolution failed: %v", err)
		}
		printJSON(result)

	case "voice", "v":
		if len(args) < 3 {
			log.Fatal(`Usage: app voice <session_id> "<utterance>"`)
		}
		result, err := svc.ApplyVoiceTurn(ctx, args[1], args[2])
		if err != nil {
			log.Fatalf("Voice turn failed: %v", err)
		}
		printJSON(result)

	case "listen":
		if len(args) < 2 {
			log.Fatal(`Usage: app listen <session_id>`)
		}
		Listen(ctx, svc, args[1], speech.NewSession(), os.Stdin, os.Stdout)

	case "history", "h":
		result, err := svc.ListHistory(ctx)
		if err != nil {
			log.Fatalf("History failed: %v", err)
		}
		printJSON(result)

	case "library", "lib":
		result, err := svc.ListLibrary(ctx)
		if err != nil {
			log.Fatalf("Library failed: %v", err)
		}
		printJSON(result)

	default:
		usage()
	}
}

// Listen runs the interactive dictation loop: every input line is a partial
// transcript for the session's silence watchdog, and each finalized
// utterance is applied to the session's document draft. Returns when the
// input ends (a pending utterance is flushed, not lost) or the context is
// canceled.
func Listen(ctx context.Context, svc app.ApplicationService, sessionID string, session *speech.Session, in io.Reader, out io.Writer) {
	defer session.Stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	apply := func(utterance string) {
		result, err := svc.ApplyVoiceTurn(ctx, sessionID, utterance)
		if err != nil {
			fmt.Fprintf(out, "voice turn failed: %v\n", err)
			return
		}
		_ = enc.Encode(result)
	}

	for {
		select {
		case text, ok := <-lines:
			if !ok {
				session.Flush()
				select {
				case utterance := <-session.Final():
					apply(utterance)
				default:
				}
				return
			}
			session.AddPartial(text)
		case utterance := <-session.Final():
			apply(utterance)
		case <-ctx.Done():
			return
		}
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  app command "<text>"                interpret a free-text or ":" command
  app search "<text>"                 search the navigation tree
  app resolve <company> "<text>"      resolve an account reference
  app voice <session> "<utterance>"   apply one voice turn to the draft
  app listen <session>                interactive dictation (stdin partials)
  app history                         list recent commands
  app library                         list saved commands`)
	os.Exit(1)
}
