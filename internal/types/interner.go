package types

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the keyword types.
type Builtins struct {
	Invalid      TypeID
	Any          TypeID
	Unknown      TypeID
	Never        TypeID
	Void         TypeID
	Undefined    TypeID
	Null         TypeID
	Boolean      TypeID
	Number       TypeID
	BigInt       TypeID
	String       TypeID
	Symbol       TypeID
	NonPrimitive TypeID
	True         TypeID
	False        TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Composite types (literals, tuples, unions, arrays and
// references) are canonicalised through a textual key so that two handles
// are equal iff the types are representationally equal. Object and
// function types declared in source are keyed by their declaration site
// (see Declare).
//
// The interner is shared by the checker and the lint workers; all methods
// are safe for concurrent use.
type Interner struct {
	mu        sync.RWMutex
	types     []Type
	index     map[typeKey]TypeID
	composite map[string]TypeID
	builtins  Builtins

	literals []LiteralInfo
	tuples   []TupleInfo
	unions   []UnionInfo
	objects  []ObjectInfo
	fns      []FnInfo
	refs     []RefInfo
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:     make(map[typeKey]TypeID, 64),
		composite: make(map[string]TypeID, 64),
	}
	// нулевые слоты: sentinel
	in.literals = append(in.literals, LiteralInfo{})
	in.tuples = append(in.tuples, TupleInfo{})
	in.unions = append(in.unions, UnionInfo{})
	in.objects = append(in.objects, ObjectInfo{})
	in.fns = append(in.fns, FnInfo{})
	in.refs = append(in.refs, RefInfo{})

	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Any = in.intern(Type{Kind: KindAny})
	in.builtins.Unknown = in.intern(Type{Kind: KindUnknown})
	in.builtins.Never = in.intern(Type{Kind: KindNever})
	in.builtins.Void = in.intern(Type{Kind: KindVoid})
	in.builtins.Undefined = in.intern(Type{Kind: KindUndefined})
	in.builtins.Null = in.intern(Type{Kind: KindNull})
	in.builtins.Boolean = in.intern(Type{Kind: KindBoolean})
	in.builtins.Number = in.intern(Type{Kind: KindNumber})
	in.builtins.BigInt = in.intern(Type{Kind: KindBigInt})
	in.builtins.String = in.intern(Type{Kind: KindString})
	in.builtins.Symbol = in.intern(Type{Kind: KindSymbol})
	in.builtins.NonPrimitive = in.intern(Type{Kind: KindNonPrimitive})
	in.builtins.True = in.literal(LiteralInfo{Base: KindBoolean, Value: "true"})
	in.builtins.False = in.literal(LiteralInfo{Base: KindBoolean, Value: "false"})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID. Only
// payload-free descriptors (keywords and arrays) may be interned directly.
func (in *Interner) Intern(t Type) TypeID {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.intern(t)
}

func (in *Interner) intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// internComposite возвращает тип по каноническому ключу или создаёт его.
func (in *Interner) internComposite(key string, create func() Type) TypeID {
	if id, ok := in.composite[key]; ok {
		return id
	}
	id := in.internRaw(create())
	in.composite[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.lookup(id)
}

func (in *Interner) lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind returns the kind of id, KindInvalid for unknown handles.
func (in *Interner) Kind(id TypeID) Kind {
	tt, _ := in.Lookup(id)
	return tt.Kind
}

// Len reports the number of interned types including the invalid sentinel.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.types)
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Flags   Flags
	Payload uint32
}

func appendSlot[T any](table *[]T, info T, what string) uint32 {
	*table = append(*table, info)
	slot, err := safecast.Conv[uint32](len(*table) - 1)
	if err != nil {
		panic(fmt.Errorf("%s info overflow: %w", what, err))
	}
	return slot
}

func cloneIDs(ids []TypeID) []TypeID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]TypeID, len(ids))
	copy(out, ids)
	return out
}

func idsKey(prefix string, ids []TypeID) string {
	buf := make([]byte, 0, len(prefix)+len(ids)*4)
	buf = append(buf, prefix...)
	for i, id := range ids {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = fmt.Appendf(buf, "%d", id)
	}
	return string(buf)
}
