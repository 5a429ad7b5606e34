package types

// RefInfo describes a named type whose structure is not modelled (library
// types such as Promise<T> or HTMLElement) or a type parameter.
type RefInfo struct {
	Name string
	Args []TypeID
}

// Ref returns the canonical reference type Name<Args...>.
func (in *Interner) Ref(name string, args ...TypeID) TypeID {
	in.mu.Lock()
	defer in.mu.Unlock()
	args = cloneIDs(args)
	return in.internComposite(idsKey("ref:"+name+"<", args), func() Type {
		return Type{Kind: KindRef, Payload: appendSlot(&in.refs, RefInfo{Name: name, Args: args}, "ref")}
	})
}

// TypeParam returns the type parameter declared at origin.
func (in *Interner) TypeParam(name, origin string) TypeID {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.internComposite("tp:"+origin, func() Type {
		return Type{Kind: KindTypeParam, Payload: appendSlot(&in.refs, RefInfo{Name: name}, "type param")}
	})
}

// RefInfo returns the name and arguments of a reference or type parameter.
func (in *Interner) RefInfo(id TypeID) (RefInfo, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.refInfo(id)
}

func (in *Interner) refInfo(id TypeID) (RefInfo, bool) {
	tt, ok := in.lookup(id)
	if !ok || (tt.Kind != KindRef && tt.Kind != KindTypeParam) || int(tt.Payload) >= len(in.refs) {
		return RefInfo{}, false
	}
	return in.refs[tt.Payload], true
}

// Instance returns the instantiation of the generic declaration at origin
// with the given arguments. Equal arguments yield the same handle.
func (in *Interner) Instance(origin, name string, args ...TypeID) TypeID {
	in.mu.Lock()
	defer in.mu.Unlock()
	args = cloneIDs(args)
	return in.internComposite(idsKey("inst:"+origin+"<", args), func() Type {
		return Type{Kind: KindRef, Payload: appendSlot(&in.refs, RefInfo{Name: name, Args: args}, "instance")}
	})
}
