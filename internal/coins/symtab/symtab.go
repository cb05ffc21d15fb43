// Package symtab holds the symbol table and scope-stack types shared across
// the semantic analyzer and the driver's reporting layer. A Table is created
// fresh per compilation and threaded explicitly from phase to phase - there
// is no process-wide global, unlike the source this was distilled from.
package symtab

// Category is the kind of entity a Symbol names.
type Category int

const (
	Variable Category = iota
	Procedure
	Function
	Parameter
)

func (c Category) String() string {
	switch c {
	case Variable:
		return "variable"
	case Procedure:
		return "procedure"
	case Function:
		return "function"
	case Parameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// ParamInfo is one parameter of a Procedure/Function symbol's signature.
type ParamInfo struct {
	Name string
	Type string
}

// Symbol is one entry in the symbol table.
type Symbol struct {
	Name         string
	Category     Category
	DeclaredType string

	// Params and ReturnType are only meaningful when Category is Procedure
	// or Function.
	Params     []ParamInfo
	ReturnType string

	// CurrentValue is the textual form of the most recent value assigned to
	// the symbol, recorded for reporting only - it is never evaluated.
	CurrentValue string
}

// Table is the mapping from identifier name to Symbol. Insertion order is
// preserved so reports render declarations in the order a reader would
// expect. The global Table is a flat record of every name ever declared; it
// is independent of the scope stack that governs name visibility during
// analysis (see Scope).
type Table struct {
	order []string
	byName map[string]*Symbol
}

// New creates an empty, ready-to-use Table.
func New() *Table {
	return &Table{byName: make(map[string]*Symbol)}
}

// Declare inserts or replaces the entry for name. It is used both by the
// lexer (placeholder "undefined" entries) and by the semantic analyzer
// (real entries with a resolved type).
func (t *Table) Declare(sym Symbol) {
	if _, exists := t.byName[sym.Name]; !exists {
		t.order = append(t.order, sym.Name)
	}
	s := sym
	t.byName[sym.Name] = &s
}

// DeclareIfAbsent inserts a placeholder entry for name only if it has never
// been seen, used by the lexer to pre-populate the table ahead of type
// information. It never overwrites an existing entry.
func (t *Table) DeclareIfAbsent(name string, placeholderType string) {
	if _, exists := t.byName[name]; exists {
		return
	}
	t.Declare(Symbol{Name: name, DeclaredType: placeholderType})
}

// Lookup returns the Symbol for name and whether it exists in the table at
// all, ignoring scoping - this is the flat reporting view, not a scope-aware
// resolution (use Scope.Resolve for that).
func (t *Table) Lookup(name string) (Symbol, bool) {
	s, ok := t.byName[name]
	if !ok {
		return Symbol{}, false
	}
	return *s, true
}

// SetCurrentValue updates the reporting-only current value of an
// already-declared symbol. It is a no-op if the symbol does not exist.
func (t *Table) SetCurrentValue(name, value string) {
	if s, ok := t.byName[name]; ok {
		s.CurrentValue = value
	}
}

// Names returns every declared name in insertion order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// All returns every Symbol in insertion order, suitable for rendering a
// report table.
func (t *Table) All() []Symbol {
	out := make([]Symbol, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, *t.byName[name])
	}
	return out
}

// Len returns the number of distinct declared names.
func (t *Table) Len() int {
	return len(t.order)
}
