package types

import (
	"sync"
	"testing"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Any == NoTypeID || b.Boolean == NoTypeID || b.True == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	str, _ := in.Lookup(b.String)
	if str.Kind != KindString {
		t.Fatalf("expected string kind, got %v", str.Kind)
	}
	if b.True == b.False {
		t.Fatal("true and false literals must differ")
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	elem := in.Builtins().String
	arr1 := in.Intern(MakeArray(elem, false))
	arr2 := in.Intern(MakeArray(elem, false))
	if arr1 != arr2 {
		t.Fatalf("array types should be deduplicated")
	}
	if ro := in.Intern(MakeArray(elem, true)); ro == arr1 {
		t.Fatalf("readonly arrays must differ from mutable ones")
	}
	if in.Literal(KindString, "a") != in.Literal(KindString, "a") {
		t.Fatal("literals should be deduplicated")
	}
	if in.Literal(KindString, "1") == in.Literal(KindNumber, "1") {
		t.Fatal("literal identity includes the base kind")
	}
}

func TestUnionCanonicalisation(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	a := in.Literal(KindString, "a")
	u1 := in.Union(b.String, b.Null, b.Number)
	u2 := in.Union(b.Number, in.Union(b.Null, b.String), b.Number)
	if u1 != u2 {
		t.Fatal("unions must be order independent and flattened")
	}
	if got := in.Union(b.String); got != b.String {
		t.Fatal("single-member union must collapse")
	}
	if got := in.Union(a, b.String); got != b.String {
		t.Fatal("literal must be absorbed by its primitive")
	}
	if got := in.Union(b.True, b.False); got != b.Boolean {
		t.Fatalf("true | false = %s, want boolean", in.TypeString(got))
	}
	if got := in.Union(b.Number, b.Never); got != b.Number {
		t.Fatal("never must disappear from unions")
	}
	if got := in.Union(b.Number, b.Any); got != b.Any {
		t.Fatal("any must absorb the union")
	}
	if got := in.Union(); got != b.Never {
		t.Fatal("empty union is never")
	}
}

func TestNonNullable(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if got := in.NonNullable(b.String); got != b.String {
		t.Fatal("non-nullable type must be returned unchanged")
	}
	u := in.Union(b.String, b.Undefined, b.Null)
	if got := in.NonNullable(u); got != b.String {
		t.Fatalf("NonNullable(%s) = %s", in.TypeString(u), in.TypeString(got))
	}
	if got := in.NonNullable(b.Any); got != b.Any {
		t.Fatal("any stays any")
	}
	tp := in.TypeParam("T", "f.ts:10")
	if got := in.NonNullable(tp); got == tp {
		t.Fatal("NonNullable<T> must differ from T")
	}
	if !in.IsNullable(u) || in.IsNullable(b.String) {
		t.Fatal("IsNullable mismatch")
	}
}

func TestWiden(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if got := in.Widen(in.Literal(KindNumber, "1")); got != b.Number {
		t.Fatal("number literal widens to number")
	}
	u := in.Union(in.Literal(KindString, "a"), b.Null)
	if got := in.Widen(u); got != in.Union(b.String, b.Null) {
		t.Fatalf("Widen(%s) = %s", in.TypeString(u), in.TypeString(got))
	}
}

func TestTuplesAndCouldBeTuple(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	t1 := in.Tuple(TupleInfo{Elems: []TypeID{b.String, b.Number}})
	t2 := in.Tuple(TupleInfo{Elems: []TypeID{b.String, b.Number}})
	if t1 != t2 {
		t.Fatal("tuples must be canonical")
	}
	if !in.IsTuple(t1) || !in.IsArrayLike(t1) || in.IsArray(t1) {
		t.Fatal("tuple predicates mismatch")
	}
	if !in.CouldBeTuple(t1) {
		t.Fatal("tuple properties are 0, 1, length")
	}

	cases := []struct {
		props []string
		want  bool
	}{
		{[]string{"0", "1"}, true},
		{[]string{"0", "1", "length", "map"}, true},
		{[]string{"a", "0"}, false},
		{[]string{"0", "2"}, false},
		{[]string{"0", "x", "1.5"}, false},
		{[]string{"0", "01"}, true},
		{nil, false},
	}
	for i, tc := range cases {
		id, _ := in.Declare(ObjectAnonymous, "", "case:"+string(rune('a'+i)))
		var props []Property
		for _, n := range tc.props {
			props = append(props, Property{Name: n, Type: b.Number})
		}
		in.SetMembers(id, ObjectInfo{Props: props})
		if got := in.CouldBeTuple(id); got != tc.want {
			t.Errorf("CouldBeTuple(%v) = %v, want %v", tc.props, got, tc.want)
		}
	}
}

func TestObjectIdentityFollowsDeclarationSite(t *testing.T) {
	in := NewInterner()
	a1, created := in.Declare(ObjectAnonymous, "", "f.ts:1")
	if !created {
		t.Fatal("first declaration must create the type")
	}
	a2, created := in.Declare(ObjectAnonymous, "", "f.ts:1")
	if created || a1 != a2 {
		t.Fatal("same origin must yield the same type")
	}
	other, _ := in.Declare(ObjectAnonymous, "", "f.ts:9")
	if other == a1 {
		t.Fatal("different declaration sites are different types")
	}
}

func TestTypeString(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	obj, _ := in.Declare(ObjectAnonymous, "", "o")
	in.SetMembers(obj, ObjectInfo{Props: []Property{{Name: "a", Type: b.String}, {Name: "b", Type: b.Number, Optional: true}}})
	iface, _ := in.Declare(ObjectInterface, "Foo", "foo")
	fn := in.Function("", FnInfo{Params: []Param{{Name: "x", Type: b.Number}}, Result: b.String})
	cases := []struct {
		id   TypeID
		want string
	}{
		{b.String, "string"},
		{in.Literal(KindString, "a"), `"a"`},
		{in.Intern(MakeArray(in.Union(b.String, b.Number), false)), "(number | string)[]"},
		{in.Tuple(TupleInfo{Elems: []TypeID{b.String, b.Number}, Optional: []bool{false, true}}), "[string, number?]"},
		{obj, "{ a: string; b?: number; }"},
		{iface, "Foo"},
		{fn, "(x: number) => string"},
		{in.Ref("Promise", b.Void), "Promise<void>"},
	}
	for _, tc := range cases {
		if got := in.TypeString(tc.id); got != tc.want {
			t.Errorf("TypeString = %q, want %q", got, tc.want)
		}
	}
}

func TestIsAssignable(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	lit := in.Literal(KindString, "a")
	opt := in.Union(b.String, b.Undefined)
	point, _ := in.Declare(ObjectInterface, "Point", "point")
	in.SetMembers(point, ObjectInfo{Props: []Property{{Name: "x", Type: b.Number}, {Name: "y", Type: b.Number}}})
	xOnly, _ := in.Declare(ObjectAnonymous, "", "x")
	in.SetMembers(xOnly, ObjectInfo{Props: []Property{{Name: "x", Type: b.Number}}})
	strs := in.Intern(MakeArray(b.String, false))
	cases := []struct {
		name     string
		src, dst TypeID
		want     bool
	}{
		{"literal to base", lit, b.String, true},
		{"base to literal", b.String, lit, false},
		{"into optional", b.String, opt, true},
		{"optional into plain", opt, b.String, false},
		{"null strict", b.Null, b.String, false},
		{"anything to unknown", point, b.Unknown, true},
		{"structural wider", point, xOnly, true},
		{"structural narrower", xOnly, point, false},
		{"tuple to array", in.Tuple(TupleInfo{Elems: []TypeID{b.String, lit}}), strs, true},
		{"array to object", strs, b.NonPrimitive, true},
		{"undefined to void", b.Undefined, b.Void, true},
	}
	for _, tc := range cases {
		if got := in.IsAssignable(tc.src, tc.dst); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestInternerIsSafeForConcurrentUse(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	var wg sync.WaitGroup
	ids := make([]TypeID, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			arr := in.Intern(MakeArray(b.Number, false))
			ids[i] = in.Union(arr, b.Null, in.Literal(KindString, "x"))
			_ = in.TypeString(ids[i])
		}(i)
	}
	wg.Wait()
	for _, id := range ids[1:] {
		if id != ids[0] {
			t.Fatal("concurrent interning must converge on one handle")
		}
	}
}
