package scope

// ScopeID identifies a scope inside a Manager.
type ScopeID uint32

// NoScopeID marks the absence of a scope reference.
const NoScopeID ScopeID = 0

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// BindingID identifies a declared name inside a Manager.
type BindingID uint32

// NoBindingID marks the absence of a binding (unresolved or not a name).
const NoBindingID BindingID = 0

// IsValid reports whether the binding ID refers to an allocated binding.
func (id BindingID) IsValid() bool { return id != NoBindingID }

// RefID identifies a reference record.
type RefID uint32

const NoRefID RefID = 0

func (id RefID) IsValid() bool { return id != NoRefID }
