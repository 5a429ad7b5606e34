package types

// LiteralInfo stores the value of a literal type. Value is the cooked
// string for string literals and the canonical source text otherwise.
type LiteralInfo struct {
	Base  Kind // KindString, KindNumber, KindBigInt или KindBoolean
	Value string
}

// Literal returns the literal type of base with the given value.
func (in *Interner) Literal(base Kind, value string) TypeID {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.literal(LiteralInfo{Base: base, Value: value})
}

// BooleanLiteral returns the `true` or `false` type.
func (in *Interner) BooleanLiteral(v bool) TypeID {
	if v {
		return in.builtins.True
	}
	return in.builtins.False
}

func (in *Interner) literal(info LiteralInfo) TypeID {
	key := "lit:" + info.Base.String() + ":" + info.Value
	return in.internComposite(key, func() Type {
		return Type{Kind: KindLiteral, Payload: appendSlot(&in.literals, info, "literal")}
	})
}

// LiteralInfo returns the value of a literal type.
func (in *Interner) LiteralInfo(id TypeID) (LiteralInfo, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.literalInfo(id)
}

func (in *Interner) literalInfo(id TypeID) (LiteralInfo, bool) {
	tt, ok := in.lookup(id)
	if !ok || tt.Kind != KindLiteral || int(tt.Payload) >= len(in.literals) {
		return LiteralInfo{}, false
	}
	return in.literals[tt.Payload], true
}
