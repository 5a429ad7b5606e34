package types

// ObjectKind distinguishes the flavours of object types.
type ObjectKind uint8

const (
	ObjectAnonymous ObjectKind = iota // литерал типа или объекта
	ObjectInterface
	ObjectClass  // тип экземпляра класса
	ObjectStatic // typeof C: статическая сторона класса или объект enum
	ObjectEnum   // тип значений enum
)

// Property is one named member of an object type.
type Property struct {
	Name     string
	Type     TypeID
	Optional bool
	Readonly bool
}

// ObjectInfo stores the members of an object type. Props keep declaration
// order (inherited members follow own members).
type ObjectInfo struct {
	Kind        ObjectKind
	Name        string
	Props       []Property
	StringIndex TypeID
	NumberIndex TypeID
	Call        TypeID // сигнатура вызова, KindFunction
	Construct   TypeID // сигнатура new, KindFunction
	Complete    bool   // члены уже заданы через SetMembers
}

// Declare returns the object type declared at origin, creating an empty
// one on first use. The second result reports whether the type was created
// by this call; the caller then fills it with SetMembers. Object types get
// their identity from the declaration site: two type literals written in
// different places are different types, while every use of one interface,
// class or alias yields the same handle.
func (in *Interner) Declare(kind ObjectKind, name, origin string) (TypeID, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	key := "obj:" + origin
	if id, ok := in.composite[key]; ok {
		return id, false
	}
	slot := appendSlot(&in.objects, ObjectInfo{Kind: kind, Name: name}, "object")
	id := in.internRaw(Type{Kind: KindObject, Payload: slot})
	in.composite[key] = id
	return id, true
}

// SetMembers stores the members of an object type; Kind and Name are kept.
func (in *Interner) SetMembers(id TypeID, info ObjectInfo) {
	in.mu.Lock()
	defer in.mu.Unlock()
	tt, ok := in.lookup(id)
	if !ok || tt.Kind != KindObject {
		return
	}
	slot := &in.objects[tt.Payload]
	info.Kind, info.Name = slot.Kind, slot.Name
	info.Props = append([]Property(nil), info.Props...)
	info.Complete = true
	*slot = info
}

// ObjectInfo returns the members of an object type.
func (in *Interner) ObjectInfo(id TypeID) (ObjectInfo, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.objectInfo(id)
}

func (in *Interner) objectInfo(id TypeID) (ObjectInfo, bool) {
	tt, ok := in.lookup(id)
	if !ok || tt.Kind != KindObject || int(tt.Payload) >= len(in.objects) {
		return ObjectInfo{}, false
	}
	return in.objects[tt.Payload], true
}
