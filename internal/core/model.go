package core

// Account is one entry of the chart of accounts. The assistant only reads
// accounts — creation and maintenance belong to the accounting module.
type Account struct {
	ID          int    `json:"id"`
	CompanyCode string `json:"company_code"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	// Leaf is true when the account has no children. Leaf accounts are the
	// bookable ones, and the resolver prefers them over their parent groups.
	Leaf bool `json:"leaf"`
}

// NavLink is a single destination in the navigation tree.
type NavLink struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Target      string `json:"target"`
	Icon        string `json:"icon,omitempty"`
}

// NavGroup is a titled subgroup of links inside a module.
type NavGroup struct {
	Name  string    `json:"name"`
	Links []NavLink `json:"links"`
}

// NavModule is a top-level module of the navigation tree
// (e.g. Contabilidad, Inventario, Nómina).
type NavModule struct {
	Name   string     `json:"name"`
	Links  []NavLink  `json:"links,omitempty"`
	Groups []NavGroup `json:"groups,omitempty"`
}

// CommandEntry is one literal command of the static dictionary, matched when
// the user input starts with the command prefix (":").
type CommandEntry struct {
	Trigger     string            `json:"trigger"`
	Aliases     []string          `json:"aliases,omitempty"`
	Description string            `json:"description,omitempty"`
	Target      string            `json:"target"`
	Params      map[string]string `json:"params,omitempty"`
}

// ToolCall is the structured result of an NLU interpretation: the chosen
// action name plus its raw parameter bag, exactly as the model produced it.
type ToolCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}
