package ai

import (
	"finaxis-assistant/internal/core"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
)

// ToolDefinition describes one action the NLU may select. The assistant
// never executes anything from here — the router decides what the selected
// action means; these definitions only shape the model's output.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any // JSON Schema for the tool's input parameters
}

// ToolRegistry holds the actions exposed to the model for command
// interpretation. Built once from the action catalog; read-only afterwards.
type ToolRegistry struct {
	tools []ToolDefinition
}

// NewToolRegistry creates an empty ToolRegistry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{}
}

// Register adds a tool to the registry.
func (r *ToolRegistry) Register(t ToolDefinition) {
	r.tools = append(r.tools, t)
}

// All returns all registered tools.
func (r *ToolRegistry) All() []ToolDefinition {
	return r.tools
}

// ToOpenAITools converts the registry to the OpenAI Responses API format.
func (r *ToolRegistry) ToOpenAITools() []responses.ToolUnionParam {
	out := make([]responses.ToolUnionParam, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, responses.ToolUnionParam{
			OfFunction: &responses.FunctionToolParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  t.InputSchema,
			},
		})
	}
	return out
}

func objectSchema(props map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

// DefaultRegistry exposes the router's action catalog as NLU tools. The
// names must stay in sync with the core.Action* constants — the router
// switches on them.
func DefaultRegistry() *ToolRegistry {
	reportProps := map[string]any{
		"cuenta":  stringProp("Nombre o código de la cuenta contable, tal como lo dijo el usuario"),
		"tercero": stringProp("Nombre del tercero (cliente o proveedor) si se menciona"),
		"desde":   stringProp("Fecha inicial YYYY-MM-DD si se menciona"),
		"hasta":   stringProp("Fecha final YYYY-MM-DD si se menciona"),
	}

	r := NewToolRegistry()
	r.Register(ToolDefinition{
		Name:        core.ActionMovimientos,
		Description: "Consultar el reporte de movimientos contables, opcionalmente filtrado por cuenta, tercero o fechas",
		InputSchema: objectSchema(reportProps),
	})
	r.Register(ToolDefinition{
		Name:        core.ActionSaldos,
		Description: "Consultar saldos o deudas de cuentas o terceros",
		InputSchema: objectSchema(reportProps),
	})
	r.Register(ToolDefinition{
		Name:        core.ActionGastos,
		Description: "Consultar el reporte de gastos",
		InputSchema: objectSchema(reportProps),
	})
	r.Register(ToolDefinition{
		Name:        core.ActionIngresos,
		Description: "Consultar el reporte de ingresos o ventas",
		InputSchema: objectSchema(reportProps),
	})
	r.Register(ToolDefinition{
		Name:        core.ActionBalance,
		Description: "Consultar el balance general",
		InputSchema: objectSchema(map[string]any{
			"desde": stringProp("Fecha inicial YYYY-MM-DD"),
			"hasta": stringProp("Fecha de corte YYYY-MM-DD"),
		}),
	})
	r.Register(ToolDefinition{
		Name:        core.ActionInventario,
		Description: "Consultar existencias de inventario",
		InputSchema: objectSchema(map[string]any{
			"item": stringProp("Nombre del item o producto si se menciona"),
		}),
	})
	r.Register(ToolDefinition{
		Name:        core.ActionNuevoDoc,
		Description: "Abrir la creación de un documento contable",
		InputSchema: objectSchema(map[string]any{
			"tipo":    stringProp("Tipo de documento (factura, recibo, nota de contabilidad, etc.)"),
			"tercero": stringProp("Tercero del documento si se menciona"),
		}),
	})
	r.Register(ToolDefinition{
		Name:        core.ActionNuevoItem,
		Description: "Abrir la creación de un item de inventario",
		InputSchema: objectSchema(map[string]any{
			"nombre": stringProp("Nombre del nuevo item si se menciona"),
		}),
	})
	r.Register(ToolDefinition{
		Name:        core.ActionNuevoTercero,
		Description: "Abrir la creación de un tercero (cliente o proveedor)",
		InputSchema: objectSchema(map[string]any{
			"nombre": stringProp("Nombre del nuevo tercero si se menciona"),
		}),
	})
	r.Register(ToolDefinition{
		Name:        core.ActionBuscarCuenta,
		Description: "Buscar una cuenta en el plan de cuentas",
		InputSchema: objectSchema(map[string]any{
			"cuenta": stringProp("Texto de búsqueda de la cuenta"),
		}),
	})
	r.Register(ToolDefinition{
		Name:        core.ActionAbrirPagina,
		Description: "Abrir una página o pantalla de la aplicación por su nombre",
		InputSchema: objectSchema(map[string]any{
			"pagina": stringProp("Nombre de la página o pantalla a abrir"),
		}),
	})
	return r
}
