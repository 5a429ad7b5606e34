package checker

import (
	"path"
	"strings"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/scope"
)

var moduleExts = []string{".d.ts", ".tsx", ".ts", ".mts", ".cts", ".js"}

// modulePath: ключ модуля: путь файла без расширения.
func modulePath(p string) string {
	p = path.Clean(p)
	for _, ext := range moduleExts {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext)
		}
	}
	return p
}

// importTarget: то, на что указывает импорт: binding другого файла либо
// выражение (export default expr, export = expr).
type importTarget struct {
	f       *fileState
	binding scope.BindingID
	expr    ast.NodeID
}

// resolveModule находит файл проекта по относительному спецификатору.
func (c *checker) resolveModule(from *fileState, spec string) *fileState {
	if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") {
		return nil
	}
	base := path.Join(path.Dir(from.file.Path), spec)
	for _, candidate := range []string{modulePath(base), base + "/index"} {
		if f, ok := c.byPath[candidate]; ok {
			return f
		}
	}
	return nil
}

// resolveImport следует за импортом к экспортированному объявлению.
func (c *checker) resolveImport(f *fileState, binding *scope.Binding) (importTarget, bool) {
	tree := f.tree
	decl := tree.Node(binding.Decl)
	if decl == nil {
		return importTarget{}, false
	}
	switch decl.Kind {
	case ast.TSImportEqualsDeclaration:
		ref := tree.Node(decl.Slots[1])
		if ref == nil || ref.Kind != ast.TSExternalModuleReference {
			return importTarget{}, false
		}
		target := c.resolveModule(f, cookString(tree.Node(ref.Slots[0]).Value))
		if target == nil {
			return importTarget{}, false
		}
		return c.exportAssignment(target)
	case ast.ImportSpecifier, ast.ImportDefaultSpecifier:
		src := tree.Child(tree.Parent(binding.Decl), ast.ImportSource)
		target := c.resolveModule(f, cookString(tree.Node(src).Value))
		if target == nil {
			return importTarget{}, false
		}
		name := "default"
		if decl.Kind == ast.ImportSpecifier {
			name = tree.Name(decl.Slots[ast.ImportedName])
		}
		return c.findExport(target, name, 0)
	}
	// import * as ns: пространство имён не моделируется
	return importTarget{}, false
}

// exportAssignment: `export = expr` у файла.
func (c *checker) exportAssignment(f *fileState) (importTarget, bool) {
	for _, stmt := range f.tree.List(f.tree.Root) {
		if f.tree.Is(stmt, ast.TSExportAssignment) {
			return c.exprTarget(f, f.tree.Child(stmt, 0)), true
		}
	}
	return importTarget{}, false
}

// exprTarget: идентификатор в экспорте сводится к его binding.
func (c *checker) exprTarget(f *fileState, expr ast.NodeID) importTarget {
	if f.tree.Is(expr, ast.Identifier) {
		if b := f.scopes.BindingOf(expr); b.IsValid() {
			return importTarget{f: f, binding: b}
		}
	}
	return importTarget{f: f, expr: expr}
}

// findExport ищет экспорт name в модуле f, включая реэкспорты.
func (c *checker) findExport(f *fileState, name string, depth int) (importTarget, bool) {
	if depth > 16 {
		return importTarget{}, false
	}
	tree := f.tree
	root := f.scopes.Root()
	for _, stmt := range tree.List(tree.Root) {
		n := tree.Node(stmt)
		switch n.Kind {
		case ast.ExportNamedDeclaration:
			if decl := n.Slots[ast.ExportDecl]; decl.IsValid() {
				if b, ok := declaredBinding(f, decl, name); ok {
					return importTarget{f: f, binding: b}, true
				}
				continue
			}
			for _, spec := range n.List {
				local := tree.Child(spec, ast.ExportSpecLocal)
				exported := tree.Child(spec, ast.ExportSpecExport)
				if !exported.IsValid() {
					exported = local
				}
				if exportedName(tree, exported) != name {
					continue
				}
				if src := n.Slots[ast.ExportFrom]; src.IsValid() {
					target := c.resolveModule(f, cookString(tree.Node(src).Value))
					if target == nil {
						return importTarget{}, false
					}
					return c.findExport(target, exportedName(tree, local), depth+1)
				}
				localName := tree.Name(local)
				if b := f.scopes.Lookup(root, localName); b.IsValid() {
					return importTarget{f: f, binding: b}, true
				}
				if b := f.scopes.LookupType(root, localName); b.IsValid() {
					return importTarget{f: f, binding: b}, true
				}
				return importTarget{}, false
			}
		case ast.ExportDefaultDeclaration:
			if name != "default" {
				continue
			}
			decl := n.Slots[ast.ExportDecl]
			if id := namedDeclID(tree, decl); id.IsValid() {
				if b := f.scopes.BindingOf(id); b.IsValid() {
					return importTarget{f: f, binding: b}, true
				}
			}
			return c.exprTarget(f, decl), true
		case ast.TSExportAssignment:
			if name == "default" {
				return c.exprTarget(f, n.Slots[0]), true
			}
		}
	}
	// export * from "./x" не переносит default
	if name == "default" {
		return importTarget{}, false
	}
	for _, stmt := range tree.List(tree.Root) {
		n := tree.Node(stmt)
		if n.Kind != ast.ExportAllDeclaration || n.Slots[ast.ExportAllName].IsValid() {
			continue
		}
		target := c.resolveModule(f, cookString(tree.Node(n.Slots[ast.ExportAllSource]).Value))
		if target == nil {
			continue
		}
		if t, ok := c.findExport(target, name, depth+1); ok {
			return t, true
		}
	}
	return importTarget{}, false
}

func exportedName(tree *ast.Tree, id ast.NodeID) string {
	n := tree.Node(id)
	if n != nil && n.Kind == ast.Literal {
		return cookString(n.Value)
	}
	return tree.Name(id)
}

// namedDeclID: идентификатор имени у объявления функции, класса, enum,
// интерфейса или псевдонима типа.
func namedDeclID(tree *ast.Tree, decl ast.NodeID) ast.NodeID {
	switch tree.Kind(decl) {
	case ast.FunctionDeclaration, ast.ClassDeclaration, ast.TSEnumDeclaration,
		ast.TSInterfaceDeclaration, ast.TSTypeAliasDeclaration:
		return tree.Child(decl, 0)
	}
	return ast.NoNodeID
}

// declaredBinding ищет name среди имён, вводимых экспортируемым объявлением.
func declaredBinding(f *fileState, decl ast.NodeID, name string) (scope.BindingID, bool) {
	tree := f.tree
	if id := namedDeclID(tree, decl); id.IsValid() {
		if tree.Name(id) == name {
			b := f.scopes.BindingOf(id)
			return b, b.IsValid()
		}
		return scope.NoBindingID, false
	}
	if !tree.Is(decl, ast.VariableDeclaration) {
		return scope.NoBindingID, false
	}
	var found scope.BindingID
	tree.Inspect(decl, func(id ast.NodeID) bool {
		if found.IsValid() {
			return false
		}
		if tree.Is(id, ast.Identifier) && f.scopes.IsDef(id) && tree.Name(id) == name {
			found = f.scopes.BindingOf(id)
		}
		return !ast.IsFunction(tree.Kind(id))
	})
	return found, found.IsValid()
}
