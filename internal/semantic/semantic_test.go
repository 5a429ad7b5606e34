package semantic_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/semantic"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/types"
)

type fakeModel struct {
	in    *types.Interner
	file  source.FileID
	typed map[ast.NodeID]types.TypeID
}

func (m *fakeModel) Types() *types.Interner { return m.in }

func (m *fakeModel) Covers(file source.FileID) bool { return file == m.file }

func (m *fakeModel) TypeAt(file source.FileID, node ast.NodeID) (types.TypeID, bool) {
	t, ok := m.typed[node]
	return t, ok && file == m.file
}

func TestBridgeWithoutModel(t *testing.T) {
	var b semantic.Bridge
	if b.ProgramAvailable() {
		t.Fatal("zero bridge reports a program")
	}
	if _, ok := b.TypeAt(1); ok {
		t.Fatal("zero bridge returned a type")
	}
	if b.IsTuple(1) || b.TypeString(1) != "" || b.NonNullable(1) != types.NoTypeID {
		t.Fatal("zero bridge answered a query")
	}
}

func TestBridgeUncoveredFile(t *testing.T) {
	in := types.NewInterner()
	m := &fakeModel{in: in, file: 1, typed: map[ast.NodeID]types.TypeID{5: in.Builtins().String}}
	if _, ok := semantic.NewBridge(m, 2).TypeAt(5); ok {
		t.Fatal("file outside the program must be absent")
	}
	b := semantic.NewBridge(m, 1)
	got, ok := b.TypeAt(5)
	if !ok || got != in.Builtins().String || !b.IsStringLike(got) {
		t.Fatalf("TypeAt = %v %v", got, ok)
	}
	opt := in.Union(in.Builtins().String, in.Builtins().Undefined)
	if b.NonNullable(opt) != in.Builtins().String {
		t.Fatalf("NonNullable(%s)", b.TypeString(opt))
	}
}

func TestCacheBuildsOncePerRoot(t *testing.T) {
	cache := semantic.NewCache()
	var calls atomic.Int32
	release := make(chan struct{})
	build := func(ctx context.Context, root string) (semantic.Model, error) {
		calls.Add(1)
		<-release
		return &fakeModel{in: types.NewInterner()}, nil
	}
	var wg sync.WaitGroup
	models := make([]semantic.Model, 8)
	for i := range models {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := cache.Get(context.Background(), "proj", build)
			if err != nil {
				t.Error(err)
			}
			models[i] = m
		}(i)
	}
	close(release)
	wg.Wait()
	if _, err := cache.Get(context.Background(), "proj", build); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 1 || cache.Builds() != 1 {
		t.Fatalf("built %d times", calls.Load())
	}
	for _, m := range models[1:] {
		if m != models[0] {
			t.Fatal("callers got different models")
		}
	}
}

func TestCacheDoesNotKeepFailures(t *testing.T) {
	cache := semantic.NewCache()
	boom := errors.New("boom")
	_, err := cache.Get(context.Background(), "p", func(context.Context, string) (semantic.Model, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	m, err := cache.Get(context.Background(), "p", func(context.Context, string) (semantic.Model, error) {
		return &fakeModel{}, nil
	})
	if err != nil || m == nil {
		t.Fatalf("retry: %v %v", m, err)
	}
}
