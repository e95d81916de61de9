package app

import "finaxis-assistant/internal/core"

// Static menu configuration. The front end renders this tree; the
// assistant only reads it — to build the search index and to resolve
// "abrir página" commands. Read-only for the whole session.

// DefaultNavTree returns the navigation tree of the application.
func DefaultNavTree() []core.NavModule {
	return []core.NavModule{
		{
			Name: "Contabilidad",
			Links: []core.NavLink{
				{Name: "Documentos", Description: "Crear y consultar documentos contables", Target: core.TargetNuevoDoc, Icon: "file-text"},
				{Name: "Plan de Cuentas", Description: "Consultar y buscar cuentas contables", Target: core.TargetBuscarCuenta, Icon: "list"},
			},
			Groups: []core.NavGroup{
				{
					Name: "Reportes",
					Links: []core.NavLink{
						{Name: "Movimientos", Description: "Movimientos contables por cuenta, tercero y fechas", Target: core.TargetMovimientos},
						{Name: "Saldos", Description: "Saldos y deudas por cuenta o tercero", Target: core.TargetSaldos},
						{Name: "Gastos", Description: "Reporte de gastos por período", Target: core.TargetGastos},
						{Name: "Ingresos", Description: "Reporte de ingresos y ventas por período", Target: core.TargetIngresos},
						{Name: "Balance General", Description: "Balance general y estado de resultados", Target: core.TargetBalance},
					},
				},
			},
		},
		{
			Name: "Inventario",
			Links: []core.NavLink{
				{Name: "Items", Description: "Crear y mantener items de inventario", Target: core.TargetNuevoItem, Icon: "box"},
				{Name: "Existencias", Description: "Existencias de inventario por bodega", Target: core.TargetExistencias, Icon: "layers"},
			},
		},
		{
			Name: "Terceros",
			Links: []core.NavLink{
				{Name: "Clientes y Proveedores", Description: "Crear y mantener terceros", Target: core.TargetNuevoTercero, Icon: "users"},
			},
		},
	}
}

// DefaultDictionary returns the literal command dictionary, matched when the
// input starts with ":".
func DefaultDictionary() []core.CommandEntry {
	return []core.CommandEntry{
		{Trigger: "nuevo item", Aliases: []string{"crear item"}, Description: "Crear un item de inventario", Target: core.TargetNuevoItem},
		{Trigger: "nuevo documento", Aliases: []string{"crear documento", "nuevo doc"}, Description: "Crear un documento contable", Target: core.TargetNuevoDoc},
		{Trigger: "nuevo tercero", Aliases: []string{"crear tercero", "nuevo cliente", "nuevo proveedor"}, Description: "Crear un tercero", Target: core.TargetNuevoTercero},
		{Trigger: "movimientos", Aliases: []string{"libro auxiliar"}, Description: "Abrir el reporte de movimientos", Target: core.TargetMovimientos},
		{Trigger: "gastos", Description: "Abrir el reporte de gastos", Target: core.TargetGastos,
			Params: map[string]string{"cuenta_desde": "5000", "cuenta_hasta": "5999"}},
		{Trigger: "ingresos", Description: "Abrir el reporte de ingresos", Target: core.TargetIngresos,
			Params: map[string]string{"cuenta_desde": "4000", "cuenta_hasta": "4999"}},
		{Trigger: "balance", Description: "Abrir el balance general", Target: core.TargetBalance},
		{Trigger: "existencias", Aliases: []string{"inventario", "stock"}, Description: "Consultar existencias de inventario", Target: core.TargetExistencias},
		{Trigger: "cuentas", Aliases: []string{"plan de cuentas"}, Description: "Buscar en el plan de cuentas", Target: core.TargetBuscarCuenta},
	}
}
