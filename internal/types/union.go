package types

import (
	"slices"
)

// UnionInfo stores the canonical members of a union type: flattened,
// deduplicated and sorted by TypeID.
type UnionInfo struct {
	Members []TypeID
}

// Union builds the canonical union of members. Nested unions are
// flattened, `never` disappears, `any` and `unknown` absorb everything,
// literals are absorbed by their primitive, and `true | false` becomes
// `boolean`. A single remaining member is returned as is.
func (in *Interner) Union(members ...TypeID) TypeID {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.union(members)
}

func (in *Interner) union(members []TypeID) TypeID {
	flat := make([]TypeID, 0, len(members))
	seen := make(map[TypeID]bool, len(members))
	var hasAny, hasUnknown bool
	prims := make(map[Kind]bool)
	var add func(id TypeID)
	add = func(id TypeID) {
		tt, ok := in.lookup(id)
		if !ok {
			return
		}
		switch tt.Kind {
		case KindUnion:
			for _, m := range in.unions[tt.Payload].Members {
				add(m)
			}
			return
		case KindNever:
			return
		case KindAny:
			hasAny = true
		case KindUnknown:
			hasUnknown = true
		}
		if tt.Kind.IsPrimitive() {
			prims[tt.Kind] = true
		}
		if !seen[id] {
			seen[id] = true
			flat = append(flat, id)
		}
	}
	for _, m := range members {
		add(m)
	}
	switch {
	case hasAny:
		return in.builtins.Any
	case hasUnknown:
		return in.builtins.Unknown
	}
	if seen[in.builtins.True] && seen[in.builtins.False] {
		prims[KindBoolean] = true
		if !seen[in.builtins.Boolean] {
			seen[in.builtins.Boolean] = true
			flat = append(flat, in.builtins.Boolean)
		}
	}
	out := flat[:0]
	for _, id := range flat {
		if info, ok := in.literalInfo(id); ok && prims[info.Base] {
			continue // литерал поглощён своим примитивом
		}
		out = append(out, id)
	}
	switch len(out) {
	case 0:
		return in.builtins.Never
	case 1:
		return out[0]
	}
	slices.Sort(out)
	out = cloneIDs(out)
	return in.internComposite(idsKey("union:", out), func() Type {
		return Type{Kind: KindUnion, Payload: appendSlot(&in.unions, UnionInfo{Members: out}, "union")}
	})
}

// Members returns the union members of id, or id itself for other types.
func (in *Interner) Members(id TypeID) []TypeID {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.members(id)
}

func (in *Interner) members(id TypeID) []TypeID {
	tt, ok := in.lookup(id)
	if !ok {
		return nil
	}
	if tt.Kind == KindUnion {
		return cloneIDs(in.unions[tt.Payload].Members)
	}
	return []TypeID{id}
}

// Intersection builds A & B. Members are flattened and sorted; `never`
// wins, `unknown` disappears.
func (in *Interner) Intersection(members ...TypeID) TypeID {
	in.mu.Lock()
	defer in.mu.Unlock()
	flat := make([]TypeID, 0, len(members))
	for _, m := range members {
		tt, ok := in.lookup(m)
		if !ok {
			continue
		}
		switch tt.Kind {
		case KindNever:
			return in.builtins.Never
		case KindAny:
			return in.builtins.Any
		case KindUnknown:
			continue
		case KindIntersection:
			flat = append(flat, in.unions[tt.Payload].Members...)
			continue
		}
		flat = append(flat, m)
	}
	slices.Sort(flat)
	flat = slices.Compact(flat)
	switch len(flat) {
	case 0:
		return in.builtins.Unknown
	case 1:
		return flat[0]
	}
	flat = cloneIDs(flat)
	return in.internComposite(idsKey("inter:", flat), func() Type {
		return Type{Kind: KindIntersection, Payload: appendSlot(&in.unions, UnionInfo{Members: flat}, "intersection")}
	})
}
