package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finaxis-assistant/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// AgentService is the NLU collaborator. Everything it returns is a
// structured result; the caller never sees raw model text.
type AgentService interface {
	// InterpretCommand classifies a free-text command into one of the
	// registered actions with its parameter bag.
	InterpretCommand(ctx context.Context, text string) (*core.ToolCall, error)

	// ExtractDraftFields pulls document-draft field contributions out of
	// one voice utterance, given the current draft for context.
	ExtractDraftFields(ctx context.Context, text string, draft core.DocumentDraft) (*core.Extraction, error)
}

// Agent implements AgentService over the OpenAI Responses API.
type Agent struct {
	client   *openai.Client
	registry *ToolRegistry
}

func NewAgent(apiKey string, registry *ToolRegistry) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client, registry: registry}
}

const commandPrompt = `You are the command interpreter of a Spanish-language accounting application.
The user types or dictates a short command. Select exactly one of the available tools
that best matches the request and fill its parameters from the text.
Rules:
1. Parameters you did not hear stay empty — never invent filters.
2. Account and third-party references are free text, NOT codes or IDs. Copy them as the user said them.
3. Dates are YYYY-MM-DD. Resolve relative dates ("este mes") against today: %s.

Command: %s`

// InterpretCommand asks the model to pick an action. The primary path is a
// function call; if the model answers with plain JSON instead (older
// backend revisions did), the tolerant decoder handles it.
func (a *Agent) InterpretCommand(ctx context.Context, text string) (*core.ToolCall, error) {
	prompt := fmt.Sprintf(commandPrompt, time.Now().Format("2006-01-02"), text)

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Tools: a.registry.ToOpenAITools(),
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	for _, item := range resp.Output {
		if item.Type != "function_call" {
			continue
		}
		fc := item.AsFunctionCall()
		args := map[string]any{}
		if fc.Arguments != "" {
			if err := json.Unmarshal([]byte(fc.Arguments), &args); err != nil {
				return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
			}
		}
		return &core.ToolCall{Name: fc.Name, Args: args}, nil
	}

	if content := resp.OutputText(); content != "" {
		return core.DecodeNLUResponse([]byte(content))
	}
	return nil, core.ErrNoToolCall
}

const extractionPrompt = `You are the voice assistant of a Spanish-language accounting application.
The user is dictating a financial document across several turns. Extract ONLY what
this utterance contributes; fields the user did not mention stay empty.
Rules:
1. Amounts are exact positive decimal strings (e.g. "100.00"). A line is either a debit or a credit.
2. Account names are free text as spoken — do not resolve them to codes.
3. Set finalize=true only if the user asked to save or finish the document.
4. Set cancel=true only if the user asked to discard it.
5. Today is %s.

Current draft state:
%s

Utterance: %s`

// ExtractDraftFields runs one structured-output extraction turn.
func (a *Agent) ExtractDraftFields(ctx context.Context, text string, draft core.DocumentDraft) (*core.Extraction, error) {
	draftJSON, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}
	prompt := fmt.Sprintf(extractionPrompt, time.Now().Format("2006-01-02"), draftJSON, text)

	// Dynamically generate the JSON schema from the Go struct.
	schemaJSON, err := json.Marshal(generateExtractionSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "draft_extraction",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Field contributions of one utterance to a financial document draft"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var extraction core.Extraction
	if err := json.Unmarshal([]byte(content), &extraction); err != nil {
		return nil, fmt.Errorf("failed to parse extraction: %w", err)
	}
	return &extraction, nil
}

func generateExtractionSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v core.Extraction
	return reflector.Reflect(v)
}
