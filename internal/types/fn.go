package types

import (
	"strconv"
	"strings"
)

// Param is one parameter of a function type.
type Param struct {
	Name     string
	Type     TypeID
	Optional bool
	Rest     bool
}

// FnInfo stores metadata for function types.
type FnInfo struct {
	Params     []Param
	Result     TypeID
	TypeParams []TypeID
}

// Function returns the function type declared at origin. An empty origin
// asks for a structurally canonical signature (used for synthesised
// members such as array methods).
func (in *Interner) Function(origin string, info FnInfo) TypeID {
	in.mu.Lock()
	defer in.mu.Unlock()
	key := "fn@" + origin
	if origin == "" {
		key = fnKey(info)
	}
	return in.internComposite(key, func() Type {
		info.Params = append([]Param(nil), info.Params...)
		info.TypeParams = cloneIDs(info.TypeParams)
		return Type{Kind: KindFunction, Payload: appendSlot(&in.fns, info, "fn")}
	})
}

func fnKey(info FnInfo) string {
	var b strings.Builder
	b.WriteString("fn:")
	for _, p := range info.Params {
		if p.Rest {
			b.WriteString("...")
		}
		b.WriteString(strconv.FormatUint(uint64(p.Type), 10))
		if p.Optional {
			b.WriteByte('?')
		}
		b.WriteByte(',')
	}
	b.WriteString("=>")
	b.WriteString(strconv.FormatUint(uint64(info.Result), 10))
	return b.String()
}

// FnInfo retrieves function type metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (FnInfo, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.fnInfo(id)
}

func (in *Interner) fnInfo(id TypeID) (FnInfo, bool) {
	tt, ok := in.lookup(id)
	if !ok || tt.Kind != KindFunction || int(tt.Payload) >= len(in.fns) {
		return FnInfo{}, false
	}
	return in.fns[tt.Payload], true
}
