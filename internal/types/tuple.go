package types

import "strconv"

// TupleInfo stores the element types for a tuple type. Optional marks
// trailing `T?` elements; Rest (when set) is the element type of `...T[]`.
type TupleInfo struct {
	Elems    []TypeID
	Optional []bool
	Rest     TypeID
	Readonly bool
}

// Tuple creates or finds the tuple type [elems...].
func (in *Interner) Tuple(info TupleInfo) TypeID {
	in.mu.Lock()
	defer in.mu.Unlock()
	info.Elems = cloneIDs(info.Elems)
	if len(info.Optional) != 0 {
		opt := make([]bool, len(info.Elems))
		copy(opt, info.Optional)
		info.Optional = opt
	}
	key := idsKey("tuple:", info.Elems)
	for i, o := range info.Optional {
		if o {
			key += "|?" + strconv.Itoa(i)
		}
	}
	if info.Rest != NoTypeID {
		key += idsKey("|...", []TypeID{info.Rest})
	}
	if info.Readonly {
		key += "|ro"
	}
	return in.internComposite(key, func() Type {
		return Type{Kind: KindTuple, Payload: appendSlot(&in.tuples, info, "tuple")}
	})
}

// TupleInfo returns the element types for a tuple TypeID.
func (in *Interner) TupleInfo(id TypeID) (TupleInfo, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	tt, ok := in.lookup(id)
	if !ok || tt.Kind != KindTuple || int(tt.Payload) >= len(in.tuples) {
		return TupleInfo{}, false
	}
	return in.tuples[tt.Payload], true
}
