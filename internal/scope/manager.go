package scope

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
)

// Manager holds the scope tree of one file together with every binding
// and value reference. It is immutable after Analyze returns.
type Manager struct {
	tree     *ast.Tree
	scopes   *arena[Scope]
	bindings *arena[Binding]
	refs     *arena[Reference]
	root     ScopeID

	owned      map[ast.NodeID]ScopeID
	defs       map[ast.NodeID]BindingID // определяющий идентификатор -> binding
	identRefs  map[ast.NodeID]RefID
	unresolved []RefID
}

func newManager(tree *ast.Tree) *Manager {
	capHint := tree.Len() / 8
	return &Manager{
		tree:      tree,
		scopes:    newArena[Scope](capHint),
		bindings:  newArena[Binding](capHint),
		refs:      newArena[Reference](capHint * 2),
		owned:     make(map[ast.NodeID]ScopeID),
		defs:      make(map[ast.NodeID]BindingID),
		identRefs: make(map[ast.NodeID]RefID),
	}
}

// Tree returns the analysed tree.
func (m *Manager) Tree() *ast.Tree { return m.tree }

// Root returns the global or module scope.
func (m *Manager) Root() ScopeID { return m.root }

// Scope returns the scope for id or nil.
func (m *Manager) Scope(id ScopeID) *Scope { return m.scopes.get(uint32(id)) }

// Binding returns the binding for id or nil.
func (m *Manager) Binding(id BindingID) *Binding { return m.bindings.get(uint32(id)) }

// Reference returns the reference for id or nil.
func (m *Manager) Reference(id RefID) *Reference { return m.refs.get(uint32(id)) }

// Scopes returns the number of scopes.
func (m *Manager) Scopes() int { return m.scopes.Len() }

// Owned returns the scope created by node, if any.
func (m *Manager) Owned(node ast.NodeID) (ScopeID, bool) {
	id, ok := m.owned[node]
	return id, ok
}

// ScopeAt returns the innermost scope owned by node or by one of its
// ancestors.
func (m *Manager) ScopeAt(node ast.NodeID) ScopeID {
	for p := node; p.IsValid(); p = m.tree.Parent(p) {
		if id, ok := m.owned[p]; ok {
			return id
		}
	}
	return m.root
}

// Lookup resolves a value name starting at scope and walking outwards.
func (m *Manager) Lookup(from ScopeID, name string) BindingID {
	for s := m.Scope(from); s != nil; s = m.Scope(s.Parent) {
		if id, ok := s.Names[name]; ok {
			return id
		}
	}
	return NoBindingID
}

// LookupType resolves a name in the type namespace.
func (m *Manager) LookupType(from ScopeID, name string) BindingID {
	for s := m.Scope(from); s != nil; s = m.Scope(s.Parent) {
		if id, ok := s.Types[name]; ok {
			return id
		}
	}
	return NoBindingID
}

// BindingOf returns the binding an identifier defines or refers to.
func (m *Manager) BindingOf(ident ast.NodeID) BindingID {
	if id, ok := m.defs[ident]; ok {
		return id
	}
	if ref := m.Reference(m.identRefs[ident]); ref != nil {
		return ref.Binding
	}
	return NoBindingID
}

// IsDef reports whether ident is a defining occurrence.
func (m *Manager) IsDef(ident ast.NodeID) bool {
	_, ok := m.defs[ident]
	return ok
}

// ReferenceAt returns the reference recorded for ident.
func (m *Manager) ReferenceAt(ident ast.NodeID) (Reference, bool) {
	if ref := m.Reference(m.identRefs[ident]); ref != nil {
		return *ref, true
	}
	return Reference{}, false
}

// ReferencesOf returns every reference to b in source order.
func (m *Manager) ReferencesOf(b BindingID) []Reference {
	binding := m.Binding(b)
	if binding == nil {
		return nil
	}
	out := make([]Reference, 0, len(binding.Refs))
	for _, r := range binding.Refs {
		out = append(out, *m.Reference(r))
	}
	return out
}

// Defs returns the defining identifiers of b.
func (m *Manager) Defs(b BindingID) []ast.NodeID {
	if binding := m.Binding(b); binding != nil {
		return binding.Defs
	}
	return nil
}

// Unresolved returns references whose name is not declared in the file.
func (m *Manager) Unresolved() []Reference {
	out := make([]Reference, 0, len(m.unresolved))
	for _, r := range m.unresolved {
		out = append(out, *m.Reference(r))
	}
	return out
}

func (m *Manager) newScope(kind Kind, parent ScopeID, owner ast.NodeID) ScopeID {
	id := ScopeID(m.scopes.allocate(Scope{
		Kind:   kind,
		Parent: parent,
		Owner:  owner,
		Span:   m.tree.Span(owner),
		Names:  make(map[string]BindingID),
		Types:  make(map[string]BindingID),
	}))
	if p := m.Scope(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	m.owned[owner] = id
	return id
}

// varScope: ближайшая область, куда всплывает var.
func (m *Manager) varScope(from ScopeID) ScopeID {
	for id := from; id.IsValid(); id = m.Scope(id).Parent {
		if m.Scope(id).Kind.IsVarScope() {
			return id
		}
	}
	return m.root
}

// declare adds ident to scope; a repeated name extends the existing binding.
func (m *Manager) declare(scope ScopeID, ident ast.NodeID, kind BindingKind, decl ast.NodeID) BindingID {
	name := m.tree.Name(ident)
	if name == "" || name == "this" {
		return NoBindingID
	}
	s := m.Scope(scope)
	ns := s.Names
	if kind.IsType() {
		ns = s.Types
	}
	if existing, ok := ns[name]; ok {
		b := m.Binding(existing)
		b.Defs = append(b.Defs, ident)
		m.defs[ident] = existing
		return existing
	}
	id := BindingID(m.bindings.allocate(Binding{
		Name:  name,
		Kind:  kind,
		Scope: scope,
		Decl:  decl,
		Defs:  []ast.NodeID{ident},
	}))
	ns[name] = id
	switch kind {
	case BindClass, BindEnum, BindImport:
		if _, ok := s.Types[name]; !ok {
			s.Types[name] = id
		}
	}
	s.Bindings = append(s.Bindings, id)
	m.defs[ident] = id
	return id
}

func (m *Manager) addRef(ident ast.NodeID, from ScopeID, binding BindingID, flags RefFlags) {
	id := RefID(m.refs.allocate(Reference{Ident: ident, From: from, Binding: binding, Flags: flags}))
	m.identRefs[ident] = id
	if b := m.Binding(binding); b != nil {
		b.Refs = append(b.Refs, id)
		return
	}
	m.unresolved = append(m.unresolved, id)
}
