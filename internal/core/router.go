package core

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandPrefix marks literal commands that bypass the NLU entirely.
const CommandPrefix = ":"

// RouteKind discriminates RouteDecision values.
type RouteKind string

const (
	RouteNavigate  RouteKind = "navigate"
	RouteUnhandled RouteKind = "unhandled"
)

// RouteDecision is the router's only output. It is router-agnostic: the
// navigation layer turns Target+Params into an actual URL, the core never
// touches one.
type RouteDecision struct {
	Kind       RouteKind         `json:"kind"`
	Target     string            `json:"target,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
	ActionName string            `json:"action_name,omitempty"`
	Message    string            `json:"message,omitempty"`
}

// Action names the NLU may return. These are the tool names exposed to the
// model, so the two lists must stay in sync (see internal/ai).
const (
	ActionMovimientos  = "consultar_movimientos"
	ActionSaldos       = "consultar_saldos"
	ActionGastos       = "consultar_gastos"
	ActionIngresos     = "consultar_ingresos"
	ActionInventario   = "consultar_inventario"
	ActionBalance      = "consultar_balance"
	ActionNuevoDoc     = "crear_documento"
	ActionNuevoItem    = "crear_item"
	ActionNuevoTercero = "crear_tercero"
	ActionBuscarCuenta = "buscar_cuenta"
	ActionAbrirPagina  = "abrir_pagina"
)

// Navigation targets. Page identifiers, not URLs.
const (
	TargetMovimientos  = "reportes/movimientos"
	TargetSaldos       = "reportes/saldos"
	TargetGastos       = "reportes/gastos"
	TargetIngresos     = "reportes/ingresos"
	TargetBalance      = "reportes/balance"
	TargetExistencias  = "inventario/existencias"
	TargetNuevoDoc     = "documentos/nuevo"
	TargetNuevoItem    = "items/nuevo"
	TargetNuevoTercero = "terceros/nuevo"
	TargetBuscarCuenta = "cuentas/buscar"
)

// actionTargets maps each recognized NLU action to its navigation target.
var actionTargets = map[string]string{
	ActionMovimientos:  TargetMovimientos,
	ActionSaldos:       TargetSaldos,
	ActionGastos:       TargetGastos,
	ActionIngresos:     TargetIngresos,
	ActionInventario:   TargetExistencias,
	ActionBalance:      TargetBalance,
	ActionNuevoDoc:     TargetNuevoDoc,
	ActionNuevoItem:    TargetNuevoItem,
	ActionNuevoTercero: TargetNuevoTercero,
	ActionBuscarCuenta: TargetBuscarCuenta,
}

// overrideRule force-redirects a general report action to a more specific
// target when keyword evidence appears in the raw text. The upstream NLU
// frequently classifies the right general action but the wrong report
// variant; these rules are the correction layer. Ordered — first match wins.
// New overrides are additions to this table, not edits to routing logic.
type overrideRule struct {
	keywords []string          // any of these as substring of the lowered raw text
	actions  []string          // AI action must be one of these to redirect
	target   string            // redirect destination
	params   map[string]string // fixed filter parameters injected on redirect
}

// generalReportActions are the actions broad enough to be overridden.
var generalReportActions = []string{ActionMovimientos, ActionBalance, ActionSaldos}

var intentOverrides = []overrideRule{
	{
		keywords: []string{"gasto", "egreso"},
		actions:  generalReportActions,
		target:   TargetGastos,
		params:   map[string]string{"cuenta_desde": "5000", "cuenta_hasta": "5999"},
	},
	{
		keywords: []string{"ingreso", "venta"},
		actions:  generalReportActions,
		target:   TargetIngresos,
		params:   map[string]string{"cuenta_desde": "4000", "cuenta_hasta": "4999"},
	},
	{
		keywords: []string{"saldo", "deuda", "debe", "adeuda"},
		actions:  []string{ActionMovimientos, ActionBalance},
		target:   TargetSaldos,
	},
	{
		keywords: []string{"inventario", "existencia", "stock"},
		actions:  generalReportActions,
		target:   TargetExistencias,
	},
}

// paramSpec maps one logical filter field to the parameter keys the NLU has
// been observed to use for it. First non-empty alias wins.
type paramSpec struct {
	field   string
	aliases []string
}

var accountParam = paramSpec{field: "cuenta", aliases: []string{"cuenta", "account", "nombre_cuenta", "account_name"}}
var counterpartParam = paramSpec{field: "tercero", aliases: []string{"tercero", "counterpart", "proveedor", "cliente", "third_party"}}
var fromParam = paramSpec{field: "desde", aliases: []string{"desde", "fecha_desde", "from", "start_date"}}
var toParam = paramSpec{field: "hasta", aliases: []string{"hasta", "fecha_hasta", "to", "end_date"}}

// targetParams lists, per target, which filter fields the destination page
// accepts. Entity references (cuenta, tercero) stay display strings — the
// destination page runs its own account resolution; the router only decides
// which page and which filter keys.
var targetParams = map[string][]paramSpec{
	TargetMovimientos:  {accountParam, counterpartParam, fromParam, toParam},
	TargetSaldos:       {accountParam, counterpartParam, toParam},
	TargetGastos:       {counterpartParam, fromParam, toParam},
	TargetIngresos:     {counterpartParam, fromParam, toParam},
	TargetBalance:      {fromParam, toParam},
	TargetExistencias:  {{field: "item", aliases: []string{"item", "producto", "product"}}},
	TargetBuscarCuenta: {accountParam},
	TargetNuevoDoc: {
		{field: "tipo", aliases: []string{"tipo", "tipo_documento", "document_type"}},
		counterpartParam,
	},
	TargetNuevoItem: {
		{field: "nombre", aliases: []string{"nombre", "name", "item"}},
	},
	TargetNuevoTercero: {
		{field: "nombre", aliases: []string{"nombre", "name", "tercero"}},
	},
}

// Router decides the target action for an interpreted command. Pure: no
// side effects, identical inputs yield identical decisions; navigation and
// toasts happen in the caller.
type Router struct {
	dictionary []CommandEntry
	index      []SearchableItem
}

// NewRouter builds a Router over the static command dictionary and the
// navigation search index, both read-only configuration.
func NewRouter(dictionary []CommandEntry, index []SearchableItem) *Router {
	return &Router{dictionary: dictionary, index: index}
}

// Route applies the routing rules in order; the first matching rule wins.
// The ordering is load-bearing: literal commands never reach the AI path,
// and keyword overrides deliberately outrank the NLU's literal
// classification.
func (r *Router) Route(ai *ToolCall, rawText string) RouteDecision {
	trimmed := strings.TrimSpace(rawText)

	// Rule 1: literal command mode. No AI involvement, and no fallback to
	// AI routing on a miss — an unrecognized literal command is reported
	// as such.
	if strings.HasPrefix(trimmed, CommandPrefix) {
		return r.routeLiteral(strings.TrimSpace(strings.TrimPrefix(trimmed, CommandPrefix)))
	}

	if ai == nil || ai.Name == "" {
		return RouteDecision{
			Kind:    RouteUnhandled,
			Message: "No entendí el comando. Intenta de nuevo.",
		}
	}

	// Rule 2: keyword intent overrides on the raw text (lower-cased, no
	// phonetic normalization — these are typed or well-transcribed words).
	lowered := strings.ToLower(trimmed)
	for _, rule := range intentOverrides {
		if !containsAny(lowered, rule.keywords) {
			continue
		}
		if !containsString(rule.actions, ai.Name) {
			continue
		}
		return r.navigate(rule.target, ai, rule.params)
	}

	// Rule 3: direct action mapping with per-target parameter extraction.
	if ai.Name == ActionAbrirPagina {
		return r.routeOpenPage(ai)
	}
	if target, ok := actionTargets[ai.Name]; ok {
		return r.navigate(target, ai, nil)
	}

	// Rule 4: unknown action — surface it, never guess.
	return RouteDecision{
		Kind:       RouteUnhandled,
		ActionName: ai.Name,
		Message:    fmt.Sprintf("Aún no sé cómo hacer eso (%s).", ai.Name),
	}
}

// routeLiteral matches the prefix-stripped command against the dictionary
// by trigger/alias substring, in dictionary order.
func (r *Router) routeLiteral(cmd string) RouteDecision {
	lowered := strings.ToLower(cmd)
	if lowered != "" {
		for _, entry := range r.dictionary {
			if literalMatches(lowered, entry) {
				params := map[string]string{}
				for k, v := range entry.Params {
					params[k] = v
				}
				return RouteDecision{
					Kind:       RouteNavigate,
					Target:     entry.Target,
					Params:     params,
					ActionName: entry.Trigger,
				}
			}
		}
	}
	return RouteDecision{
		Kind:       RouteUnhandled,
		ActionName: cmd,
		Message:    fmt.Sprintf("Comando no reconocido: %q.", CommandPrefix+cmd),
	}
}

// routeOpenPage resolves a page reference through the navigation index.
func (r *Router) routeOpenPage(ai *ToolCall) RouteDecision {
	query := firstArg(ai.Args, "pagina", "page", "nombre", "destino")
	if query != "" {
		if hits := Search(r.index, query, 1); len(hits) > 0 {
			return RouteDecision{
				Kind:       RouteNavigate,
				Target:     hits[0].Target,
				Params:     map[string]string{},
				ActionName: ai.Name,
			}
		}
	}
	return RouteDecision{
		Kind:       RouteUnhandled,
		ActionName: ai.Name,
		Message:    fmt.Sprintf("No encontré la página %q.", query),
	}
}

// navigate builds the decision for a target: fixed params first, then the
// per-target alias extraction fills the remaining fields. Missing or
// malformed parameters degrade to a less filtered report, never an error.
func (r *Router) navigate(target string, ai *ToolCall, fixed map[string]string) RouteDecision {
	params := map[string]string{}
	for k, v := range fixed {
		params[k] = v
	}
	for _, spec := range targetParams[target] {
		if _, taken := params[spec.field]; taken {
			continue
		}
		if v := firstArg(ai.Args, spec.aliases...); v != "" {
			params[spec.field] = v
		}
	}
	return RouteDecision{
		Kind:       RouteNavigate,
		Target:     target,
		Params:     params,
		ActionName: ai.Name,
	}
}

// firstArg returns the first non-empty value among the aliased keys,
// stringified. The NLU emits strings most of the time but numbers happen.
func firstArg(args map[string]any, aliases ...string) string {
	for _, key := range aliases {
		v, ok := args[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		case float64:
			if t == float64(int64(t)) {
				return strconv.FormatInt(int64(t), 10)
			}
			return strconv.FormatFloat(t, 'f', -1, 64)
		case int:
			return strconv.Itoa(t)
		case bool:
			return strconv.FormatBool(t)
		}
	}
	return ""
}

func literalMatches(input string, entry CommandEntry) bool {
	names := append([]string{entry.Trigger}, entry.Aliases...)
	for _, n := range names {
		n = strings.ToLower(n)
		if n == "" {
			continue
		}
		if strings.Contains(input, n) || strings.Contains(n, input) {
			return true
		}
	}
	return false
}

func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
