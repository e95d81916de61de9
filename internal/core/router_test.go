package core_test

import (
	"reflect"
	"testing"

	"finaxis-assistant/internal/core"
)

func testRouter() *core.Router {
	index := core.BuildSearchIndex(testNavTree(), testDictionary())
	return core.NewRouter(testDictionary(), index)
}

// Literal commands bypass the AI result entirely: the decision must be the
// same whether a tool call is present or not.
func TestRoute_LiteralCommand(t *testing.T) {
	r := testRouter()

	got := r.Route(nil, ":nuevo item")
	if got.Kind != core.RouteNavigate {
		t.Fatalf("kind = %s, want navigate (%+v)", got.Kind, got)
	}
	if got.Target != "items/nuevo" {
		t.Errorf("target = %q, want items/nuevo", got.Target)
	}

	withAI := r.Route(&core.ToolCall{Name: core.ActionBalance, Args: map[string]any{}}, ":nuevo item")
	if withAI.Target != got.Target || withAI.Kind != got.Kind {
		t.Error("literal command must ignore the AI result")
	}
}

func TestRoute_LiteralCommandByAlias(t *testing.T) {
	r := testRouter()
	got := r.Route(nil, ":crear documento de venta")
	if got.Kind != core.RouteNavigate || got.Target != "documentos/nuevo" {
		t.Errorf("alias substring match failed: %+v", got)
	}
}

// An unrecognized literal command reports itself — it never falls through
// to AI routing.
func TestRoute_LiteralCommandUnrecognized(t *testing.T) {
	r := testRouter()
	got := r.Route(&core.ToolCall{Name: core.ActionBalance}, ":zzz")
	if got.Kind != core.RouteUnhandled {
		t.Fatalf("kind = %s, want unhandled", got.Kind)
	}
	if got.Message == "" {
		t.Error("unrecognized command needs a user-visible message")
	}
}

// The NLU says "generic movements report", the raw text says "gastos": the
// override wins and injects the expense account range.
func TestRoute_KeywordOverrideGastos(t *testing.T) {
	r := testRouter()
	ai := &core.ToolCall{Name: core.ActionMovimientos, Args: map[string]any{}}
	got := r.Route(ai, "muéstrame los gastos de este mes")

	if got.Kind != core.RouteNavigate || got.Target != core.TargetGastos {
		t.Fatalf("expected redirect to %s, got %+v", core.TargetGastos, got)
	}
	if got.Params["cuenta_desde"] != "5000" || got.Params["cuenta_hasta"] != "5999" {
		t.Errorf("expense range filter not injected: %v", got.Params)
	}
}

func TestRoute_KeywordOverrideSaldos(t *testing.T) {
	r := testRouter()
	ai := &core.ToolCall{Name: core.ActionMovimientos, Args: map[string]any{
		"tercero": "Distribuidora Norte",
	}}
	got := r.Route(ai, "¿cuánto me debe Distribuidora Norte?")

	if got.Target != core.TargetSaldos {
		t.Fatalf("expected redirect to saldos, got %+v", got)
	}
	if got.Params["tercero"] != "Distribuidora Norte" {
		t.Errorf("counterpart should pass through as display string: %v", got.Params)
	}
}

// Overrides only apply to the known general report actions.
func TestRoute_OverrideRequiresGeneralAction(t *testing.T) {
	r := testRouter()
	ai := &core.ToolCall{Name: core.ActionNuevoItem, Args: map[string]any{"nombre": "Gastos varios"}}
	got := r.Route(ai, "crear item gastos varios")
	if got.Target != core.TargetNuevoItem {
		t.Errorf("override must not hijack a creation action: %+v", got)
	}
}

func TestRoute_ParameterAliases(t *testing.T) {
	r := testRouter()
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"primary key", map[string]any{"cuenta": "Bancos"}, "Bancos"},
		{"english alias", map[string]any{"account": "Bancos"}, "Bancos"},
		{"first non-empty wins", map[string]any{"cuenta": "", "account_name": "Bancos"}, "Bancos"},
		{"numeric code", map[string]any{"cuenta": 1110.0}, "1110"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Route(&core.ToolCall{Name: core.ActionMovimientos, Args: tt.args}, "movimientos de la cuenta")
			if got.Params["cuenta"] != tt.want {
				t.Errorf("cuenta = %q, want %q (params %v)", got.Params["cuenta"], tt.want, got.Params)
			}
		})
	}
}

// Missing parameters degrade to a less filtered report, never an error.
func TestRoute_MissingParamsDegrade(t *testing.T) {
	r := testRouter()
	got := r.Route(&core.ToolCall{Name: core.ActionMovimientos, Args: nil}, "ver movimientos")
	if got.Kind != core.RouteNavigate || got.Target != core.TargetMovimientos {
		t.Fatalf("expected plain navigation, got %+v", got)
	}
	if len(got.Params) != 0 {
		t.Errorf("no params expected, got %v", got.Params)
	}
}

func TestRoute_UnknownAction(t *testing.T) {
	r := testRouter()
	got := r.Route(&core.ToolCall{Name: "lanzar_cohete", Args: map[string]any{}}, "lanza un cohete")
	if got.Kind != core.RouteUnhandled {
		t.Fatalf("kind = %s, want unhandled", got.Kind)
	}
	if got.ActionName != "lanzar_cohete" || got.Message == "" {
		t.Errorf("unknown action must be surfaced: %+v", got)
	}
}

func TestRoute_OpenPageUsesIndex(t *testing.T) {
	r := testRouter()
	got := r.Route(&core.ToolCall{Name: core.ActionAbrirPagina, Args: map[string]any{"pagina": "existencias"}}, "abre existencias")
	if got.Kind != core.RouteNavigate || got.Target != "inventario/existencias" {
		t.Errorf("open-page routing failed: %+v", got)
	}

	miss := r.Route(&core.ToolCall{Name: core.ActionAbrirPagina, Args: map[string]any{"pagina": "astrología"}}, "abre astrología")
	if miss.Kind != core.RouteUnhandled {
		t.Errorf("unknown page should be unhandled: %+v", miss)
	}
}

// Route is pure: identical inputs, identical decisions, no shared state.
func TestRoute_Pure(t *testing.T) {
	r := testRouter()
	ai := &core.ToolCall{Name: core.ActionMovimientos, Args: map[string]any{"cuenta": "Caja"}}
	first := r.Route(ai, "movimientos de caja")
	for i := 0; i < 5; i++ {
		if again := r.Route(ai, "movimientos de caja"); !reflect.DeepEqual(first, again) {
			t.Fatalf("route not deterministic: %+v vs %+v", first, again)
		}
	}
}
