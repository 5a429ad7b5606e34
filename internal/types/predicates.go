package types

import "strconv"

// IsLiteral reports string, number, bigint and boolean literal types.
// Unions of literals (boolean included) are not literals.
func (in *Interner) IsLiteral(id TypeID) bool {
	return in.Kind(id) == KindLiteral
}

// IsTuple reports tuple types.
func (in *Interner) IsTuple(id TypeID) bool {
	return in.Kind(id) == KindTuple
}

// IsObject reports object-like types: object literals, classes,
// interfaces, arrays, tuples, functions and library references.
func (in *Interner) IsObject(id TypeID) bool {
	switch in.Kind(id) {
	case KindObject, KindArray, KindTuple, KindFunction, KindRef:
		return true
	}
	return false
}

// IsArray reports T[] and readonly T[] (the types whose symbol is Array).
func (in *Interner) IsArray(id TypeID) bool {
	return in.Kind(id) == KindArray
}

// IsArrayLike reports arrays and tuples.
func (in *Interner) IsArrayLike(id TypeID) bool {
	k := in.Kind(id)
	return k == KindArray || k == KindTuple
}

// IsStringLike reports `string` and string literal types.
func (in *Interner) IsStringLike(id TypeID) bool {
	in.mu.RLock()
	defer in.mu.RUnlock()
	tt, ok := in.lookup(id)
	if !ok {
		return false
	}
	if tt.Kind == KindString {
		return true
	}
	info, ok := in.literalInfo(id)
	return ok && info.Base == KindString
}

// IsNullable reports whether null or undefined is part of id.
func (in *Interner) IsNullable(id TypeID) bool {
	in.mu.RLock()
	defer in.mu.RUnlock()
	for _, m := range in.members(id) {
		if k := in.types[m].Kind; k == KindNull || k == KindUndefined {
			return true
		}
	}
	return false
}

// NonNullable removes null and undefined from id. `any` stays `any`;
// type parameters and `unknown` become NonNullable<T>, a distinct type.
func (in *Interner) NonNullable(id TypeID) TypeID {
	switch in.Kind(id) {
	case KindInvalid, KindAny:
		return id
	case KindTypeParam, KindUnknown:
		return in.Ref("NonNullable", id)
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	members := in.members(id)
	kept := make([]TypeID, 0, len(members))
	for _, m := range members {
		if k := in.types[m].Kind; k != KindNull && k != KindUndefined {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(members) {
		return id
	}
	return in.union(kept)
}

// Widen replaces literal types by their primitive.
func (in *Interner) Widen(id TypeID) TypeID {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.widen(id)
}

func (in *Interner) widen(id TypeID) TypeID {
	tt, ok := in.lookup(id)
	if !ok {
		return id
	}
	switch tt.Kind {
	case KindLiteral:
		return in.intern(Type{Kind: in.literals[tt.Payload].Base})
	case KindUnion:
		members := in.unions[tt.Payload].Members
		widened := make([]TypeID, len(members))
		changed := false
		for i, m := range members {
			widened[i] = in.widen(m)
			changed = changed || widened[i] != m
		}
		if !changed {
			return id
		}
		return in.union(widened)
	}
	return id
}

// Properties returns the named members of id in declaration order.
// Tuples expose their index keys followed by length; arrays expose length.
func (in *Interner) Properties(id TypeID) []Property {
	in.mu.RLock()
	defer in.mu.RUnlock()
	tt, ok := in.lookup(id)
	if !ok {
		return nil
	}
	number := in.builtins.Number
	switch tt.Kind {
	case KindObject:
		return append([]Property(nil), in.objects[tt.Payload].Props...)
	case KindTuple:
		info := in.tuples[tt.Payload]
		props := make([]Property, 0, len(info.Elems)+1)
		for i, e := range info.Elems {
			optional := i < len(info.Optional) && info.Optional[i]
			props = append(props, Property{Name: strconv.Itoa(i), Type: e, Optional: optional, Readonly: info.Readonly})
		}
		return append(props, Property{Name: "length", Type: number, Readonly: true})
	case KindArray:
		return []Property{{Name: "length", Type: number, Readonly: tt.Flags&FlagReadonly != 0}}
	case KindString:
		return []Property{{Name: "length", Type: number, Readonly: true}}
	}
	return nil
}

// Property looks up one member of id by name.
func (in *Interner) Property(id TypeID, name string) (Property, bool) {
	for _, p := range in.Properties(id) {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// CouldBeTuple reports object types whose own properties start with the
// consecutive keys "0".."n-1" (n >= 1) and contain no other numeric key.
// Such types behave as tuples even without the tuple marker.
func (in *Interner) CouldBeTuple(id TypeID) bool {
	props := in.Properties(id)
	if len(props) == 0 {
		return false
	}
	i := 0
	for ; i < len(props); i++ {
		if props[i].Name != strconv.Itoa(i) {
			if i == 0 {
				return false
			}
			break
		}
	}
	for ; i < len(props); i++ {
		if isCanonicalNumber(props[i].Name) {
			return false
		}
	}
	return true
}

// isCanonicalNumber повторяет проверку String(+name) === name.
func isCanonicalNumber(name string) bool {
	switch name {
	case "NaN", "Infinity", "-Infinity":
		return true
	}
	f, err := strconv.ParseFloat(name, 64)
	if err != nil {
		return false
	}
	return FormatNumber(f) == name
}

// FormatNumber renders f the way Number.prototype.toString does.
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go: 1e+21, JS: 1e+21; Go: 1e-07, JS: 1e-7
		for i := 1; i+2 < len(s); i++ {
			if (s[i] == '-' || s[i] == '+') && s[i-1] == 'e' && s[i+1] == '0' {
				return s[:i+1] + s[i+2:]
			}
		}
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ElementType returns what iterating id yields: the element of an array,
// the union of tuple elements, or string for strings.
func (in *Interner) ElementType(id TypeID) TypeID {
	tt, ok := in.Lookup(id)
	if !ok {
		return NoTypeID
	}
	switch tt.Kind {
	case KindArray:
		return tt.Elem
	case KindTuple:
		info, _ := in.TupleInfo(id)
		elems := cloneIDs(info.Elems)
		if info.Rest != NoTypeID {
			elems = append(elems, info.Rest)
		}
		return in.Union(elems...)
	case KindString:
		return in.builtins.String
	}
	if info, ok := in.LiteralInfo(id); ok && info.Base == KindString {
		return in.builtins.String
	}
	return NoTypeID
}
