package types

// IsAssignable reports whether a value of type src can be assigned to dst
// under strict null checks. The relation is structural for object types,
// covariant for arrays and tuples, and bivariant for parameters.
func (in *Interner) IsAssignable(src, dst TypeID) bool {
	in.mu.RLock()
	defer in.mu.RUnlock()
	r := relation{in: in, seen: make(map[[2]TypeID]bool)}
	return r.assignable(src, dst)
}

type relation struct {
	in   *Interner
	seen map[[2]TypeID]bool // предполагаем истину для рекурсивных пар
}

func (r *relation) assignable(src, dst TypeID) bool {
	if src == dst {
		return true
	}
	in := r.in
	s, ok1 := in.lookup(src)
	d, ok2 := in.lookup(dst)
	if !ok1 || !ok2 {
		return false
	}
	switch {
	case d.Kind == KindAny || d.Kind == KindUnknown:
		return true
	case s.Kind == KindAny || s.Kind == KindNever:
		return true
	}
	pair := [2]TypeID{src, dst}
	if r.seen[pair] {
		return true
	}
	r.seen[pair] = true

	if s.Kind == KindUnion {
		for _, m := range in.unions[s.Payload].Members {
			if !r.assignable(m, dst) {
				return false
			}
		}
		return true
	}
	if d.Kind == KindUnion {
		for _, m := range in.unions[d.Payload].Members {
			if r.assignable(src, m) {
				return true
			}
		}
		return false
	}
	if d.Kind == KindIntersection {
		for _, m := range in.unions[d.Payload].Members {
			if !r.assignable(src, m) {
				return false
			}
		}
		return true
	}
	if s.Kind == KindIntersection {
		for _, m := range in.unions[s.Payload].Members {
			if r.assignable(m, dst) {
				return true
			}
		}
		return false
	}

	switch d.Kind {
	case KindVoid:
		return s.Kind == KindUndefined
	case KindBoolean, KindNumber, KindBigInt, KindString:
		if s.Kind == KindLiteral {
			return in.literals[s.Payload].Base == d.Kind
		}
		return false
	case KindNonPrimitive:
		return in.IsObjectKind(s.Kind)
	case KindLiteral:
		return false // равенство уже проверено
	case KindArray:
		switch s.Kind {
		case KindArray:
			if s.Flags&FlagReadonly != 0 && d.Flags&FlagReadonly == 0 {
				return false
			}
			return r.assignable(s.Elem, d.Elem)
		case KindTuple:
			info := in.tuples[s.Payload]
			if info.Readonly && d.Flags&FlagReadonly == 0 {
				return false
			}
			for _, e := range info.Elems {
				if !r.assignable(e, d.Elem) {
					return false
				}
			}
			return info.Rest == NoTypeID || r.assignable(info.Rest, d.Elem)
		}
		return false
	case KindTuple:
		if s.Kind != KindTuple {
			return false
		}
		return r.tuple(in.tuples[s.Payload], in.tuples[d.Payload])
	case KindFunction:
		switch s.Kind {
		case KindFunction:
			return r.function(in.fns[s.Payload], in.fns[d.Payload])
		case KindObject:
			if call := in.objects[s.Payload].Call; call != NoTypeID {
				return r.assignable(call, dst)
			}
		}
		return false
	case KindObject:
		return r.object(src, s, in.objects[d.Payload])
	case KindRef:
		if s.Kind != KindRef {
			return false
		}
		si, di := in.refs[s.Payload], in.refs[d.Payload]
		if si.Name != di.Name || len(si.Args) != len(di.Args) {
			return false
		}
		for i := range si.Args {
			if !r.assignable(si.Args[i], di.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// IsObjectKind reports kinds assignable to `object`.
func (in *Interner) IsObjectKind(k Kind) bool {
	switch k {
	case KindObject, KindArray, KindTuple, KindFunction, KindRef, KindNonPrimitive:
		return true
	}
	return false
}

func (r *relation) tuple(s, d TupleInfo) bool {
	if s.Readonly && !d.Readonly {
		return false
	}
	if len(s.Elems) > len(d.Elems) && d.Rest == NoTypeID {
		return false
	}
	for i, de := range d.Elems {
		if i >= len(s.Elems) {
			if i < len(d.Optional) && d.Optional[i] {
				continue
			}
			return false
		}
		if !r.assignable(s.Elems[i], de) {
			return false
		}
	}
	for i := len(d.Elems); i < len(s.Elems); i++ {
		if !r.assignable(s.Elems[i], d.Rest) {
			return false
		}
	}
	if s.Rest != NoTypeID {
		return d.Rest != NoTypeID && r.assignable(s.Rest, d.Rest)
	}
	return true
}

func (r *relation) function(s, d FnInfo) bool {
	required := 0
	for _, p := range s.Params {
		if !p.Optional && !p.Rest {
			required++
		}
	}
	if required > len(d.Params) && !hasRest(d.Params) {
		return false
	}
	for i := 0; i < len(s.Params) && i < len(d.Params); i++ {
		sp, dp := s.Params[i].Type, d.Params[i].Type
		if !r.assignable(sp, dp) && !r.assignable(dp, sp) {
			return false
		}
	}
	in := r.in
	if d.Result == in.builtins.Void || d.Result == NoTypeID {
		return true
	}
	return s.Result != NoTypeID && r.assignable(s.Result, d.Result)
}

func hasRest(params []Param) bool {
	return len(params) > 0 && params[len(params)-1].Rest
}

// object проверяет структурную совместимость с объектным типом d.
func (r *relation) object(src TypeID, s Type, d ObjectInfo) bool {
	in := r.in
	switch s.Kind {
	case KindObject:
		si := in.objects[s.Payload]
		if d.Kind == ObjectEnum || si.Kind == ObjectEnum {
			return false // enum номинален
		}
		for _, dp := range d.Props {
			sp, ok := findProp(si.Props, dp.Name)
			if !ok {
				if dp.Optional {
					continue
				}
				return false
			}
			if sp.Optional && !dp.Optional {
				return false
			}
			if !r.assignable(sp.Type, dp.Type) {
				return false
			}
		}
		if d.StringIndex != NoTypeID {
			for _, sp := range si.Props {
				if !r.assignable(sp.Type, d.StringIndex) {
					return false
				}
			}
		}
		if d.Call != NoTypeID && (si.Call == NoTypeID || !r.assignable(si.Call, d.Call)) {
			return false
		}
		return true
	case KindArray, KindTuple, KindString, KindFunction:
		// массивы и строки подходят под объекты, которым хватает length
		for _, dp := range d.Props {
			if dp.Optional {
				continue
			}
			if dp.Name != "length" {
				return false
			}
		}
		return d.Kind != ObjectEnum
	}
	return false
}

func findProp(props []Property, name string) (Property, bool) {
	for _, p := range props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}
