package types

import (
	"strconv"
	"strings"
)

// maxFormatDepth ограничивает вложенность при печати рекурсивных типов.
const maxFormatDepth = 4

// TypeString renders id the way TypeScript prints types in messages.
func (in *Interner) TypeString(id TypeID) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	var b strings.Builder
	in.format(&b, id, 0)
	return b.String()
}

func (in *Interner) format(b *strings.Builder, id TypeID, depth int) {
	tt, ok := in.lookup(id)
	if !ok {
		b.WriteString("?")
		return
	}
	if depth > maxFormatDepth {
		b.WriteString("...")
		return
	}
	switch tt.Kind {
	case KindLiteral:
		info := in.literals[tt.Payload]
		if info.Base == KindString {
			b.WriteString(strconv.Quote(info.Value))
		} else {
			b.WriteString(info.Value)
		}
	case KindArray:
		if tt.Flags&FlagReadonly != 0 {
			b.WriteString("readonly ")
		}
		in.formatOperand(b, tt.Elem, depth+1)
		b.WriteString("[]")
	case KindTuple:
		info := in.tuples[tt.Payload]
		if info.Readonly {
			b.WriteString("readonly ")
		}
		b.WriteByte('[')
		for i, e := range info.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			in.format(b, e, depth+1)
			if i < len(info.Optional) && info.Optional[i] {
				b.WriteByte('?')
			}
		}
		if info.Rest != NoTypeID {
			if len(info.Elems) > 0 {
				b.WriteString(", ")
			}
			b.WriteString("...")
			in.formatOperand(b, info.Rest, depth+1)
			b.WriteString("[]")
		}
		b.WriteByte(']')
	case KindUnion, KindIntersection:
		sep := " | "
		if tt.Kind == KindIntersection {
			sep = " & "
		}
		for i, m := range in.unions[tt.Payload].Members {
			if i > 0 {
				b.WriteString(sep)
			}
			in.formatOperand(b, m, depth+1)
		}
	case KindObject:
		info := in.objects[tt.Payload]
		switch {
		case info.Kind == ObjectStatic:
			b.WriteString("typeof " + info.Name)
		case info.Name != "":
			b.WriteString(info.Name)
		default:
			in.formatMembers(b, info, depth)
		}
	case KindFunction:
		in.formatSignature(b, in.fns[tt.Payload], depth)
	case KindRef, KindTypeParam:
		info := in.refs[tt.Payload]
		b.WriteString(info.Name)
		if len(info.Args) > 0 {
			b.WriteByte('<')
			for i, a := range info.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				in.format(b, a, depth+1)
			}
			b.WriteByte('>')
		}
	default:
		b.WriteString(tt.Kind.String())
	}
}

// formatOperand берёт в скобки объединения и функции внутри T[] и A | B.
func (in *Interner) formatOperand(b *strings.Builder, id TypeID, depth int) {
	k := in.types[id].Kind
	if k == KindUnion || k == KindIntersection || k == KindFunction {
		b.WriteByte('(')
		in.format(b, id, depth)
		b.WriteByte(')')
		return
	}
	in.format(b, id, depth)
}

func (in *Interner) formatMembers(b *strings.Builder, info ObjectInfo, depth int) {
	if len(info.Props) == 0 && info.StringIndex == NoTypeID && info.Call == NoTypeID {
		b.WriteString("{}")
		return
	}
	b.WriteString("{ ")
	if info.Call != NoTypeID {
		in.formatSignature(b, in.fns[in.types[info.Call].Payload], depth)
		b.WriteString("; ")
	}
	if info.StringIndex != NoTypeID {
		b.WriteString("[key: string]: ")
		in.format(b, info.StringIndex, depth+1)
		b.WriteString("; ")
	}
	for _, p := range info.Props {
		if p.Readonly {
			b.WriteString("readonly ")
		}
		b.WriteString(p.Name)
		if p.Optional {
			b.WriteByte('?')
		}
		b.WriteString(": ")
		in.format(b, p.Type, depth+1)
		b.WriteString("; ")
	}
	b.WriteByte('}')
}

func (in *Interner) formatSignature(b *strings.Builder, info FnInfo, depth int) {
	b.WriteByte('(')
	for i, p := range info.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		if p.Rest {
			b.WriteString("...")
		}
		name := p.Name
		if name == "" {
			name = "arg" + strconv.Itoa(i)
		}
		b.WriteString(name)
		if p.Optional {
			b.WriteByte('?')
		}
		b.WriteString(": ")
		in.format(b, p.Type, depth+1)
	}
	b.WriteString(") => ")
	if info.Result == NoTypeID {
		b.WriteString("void")
		return
	}
	in.format(b, info.Result, depth+1)
}
