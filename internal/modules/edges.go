package modules

import (
	"path"
	"sort"
	"strings"

	"depscope/internal/depgraph"
)

// DeriveModuleEdges resolves raw import statements to module-level
// dependency edges. Imports that resolve outside the discovered roots
// (standard library, external packages) are dropped; intra-module imports
// collapse to nothing. Edges are deduplicated with a strength count and
// sorted for deterministic downstream output.
func DeriveModuleEdges(imports []*ImportEdge, roots []*ModuleRoot) []*ModuleEdge {
	resolver := newResolver(roots)

	counts := make(map[string]int)
	for _, imp := range imports {
		from := resolver.moduleForFile(imp.FromFile)
		if from == "" {
			continue
		}
		to := resolver.resolve(imp)
		if to == "" || to == from {
			continue
		}
		counts[from+"\x00"+to]++
	}

	edges := make([]*ModuleEdge, 0, len(counts))
	for key, strength := range counts {
		from, to, _ := strings.Cut(key, "\x00")
		edges = append(edges, &ModuleEdge{From: from, To: to, Strength: strength})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// ToGraphEdges converts module edges to the form the graph builder takes.
func ToGraphEdges(edges []*ModuleEdge) []depgraph.Edge {
	out := make([]depgraph.Edge, len(edges))
	for i, e := range edges {
		out[i] = depgraph.Edge{From: e.From, To: e.To}
	}
	return out
}

// resolver maps files and import strings back to module ids.
type resolver struct {
	roots []*ModuleRoot
	// byName indexes roots by their declared manifest name for package
	// imports ("lodash", "package:app/...", Go module paths).
	byName map[string]*ModuleRoot
	// ids sorted longest-first so file ownership picks the deepest root.
	ids []string
}

func newResolver(roots []*ModuleRoot) *resolver {
	r := &resolver{
		roots:  roots,
		byName: make(map[string]*ModuleRoot, len(roots)),
		ids:    make([]string, 0, len(roots)),
	}
	for _, root := range roots {
		if root.Name != "" {
			r.byName[root.Name] = root
		}
		r.ids = append(r.ids, root.ID)
	}
	sort.Slice(r.ids, func(i, j int) bool { return len(r.ids[i]) > len(r.ids[j]) })
	return r
}

// moduleForFile returns the id of the deepest root containing the file.
func (r *resolver) moduleForFile(file string) string {
	for _, id := range r.ids {
		if id == "." {
			continue
		}
		if file == id || strings.HasPrefix(file, id+"/") {
			return id
		}
	}
	for _, id := range r.ids {
		if id == "." {
			return id
		}
	}
	return ""
}

// resolve maps one raw import to a target module id, or "" when the
// import is external or unresolvable.
func (r *resolver) resolve(imp *ImportEdge) string {
	raw := imp.RawImport

	// Relative imports resolve against the importing file's directory.
	if strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../") {
		joined := path.Join(path.Dir(imp.FromFile), raw)
		return r.moduleForFile(joined)
	}

	switch imp.Language {
	case LanguageGo:
		return r.resolveGo(raw)
	case LanguagePython:
		return r.resolvePython(imp, raw)
	case LanguageRust:
		return r.resolveRust(raw)
	case LanguageJava:
		return r.resolveJava(raw)
	case LanguageDart:
		return r.resolveDart(raw)
	default:
		// JS/TS bare specifiers are package names.
		name := raw
		if idx := strings.Index(name, "/"); idx > 0 && !strings.HasPrefix(name, "@") {
			name = name[:idx]
		}
		if root, ok := r.byName[name]; ok {
			return root.ID
		}
		return ""
	}
}

// resolveGo matches the import path against declared Go module paths,
// preferring the longest match so a nested module wins over the module
// enclosing it. Standard library and external paths fall through to "".
func (r *resolver) resolveGo(raw string) string {
	best := ""
	var bestRoot *ModuleRoot
	for name, root := range r.byName {
		if root.Language != LanguageGo {
			continue
		}
		if (raw == name || strings.HasPrefix(raw, name+"/")) && len(name) > len(best) {
			best = name
			bestRoot = root
		}
	}
	if bestRoot != nil {
		return bestRoot.ID
	}
	return ""
}

// resolvePython converts a dotted import to a path and looks for an
// owning root. Leading dots are relative to the importing file's package.
func (r *resolver) resolvePython(imp *ImportEdge, raw string) string {
	if strings.HasPrefix(raw, ".") {
		up := 0
		for up < len(raw) && raw[up] == '.' {
			up++
		}
		base := path.Dir(imp.FromFile)
		for i := 1; i < up; i++ {
			base = path.Dir(base)
		}
		rest := strings.ReplaceAll(raw[up:], ".", "/")
		return r.moduleForFile(path.Join(base, rest))
	}

	asPath := strings.ReplaceAll(raw, ".", "/")
	if owner := r.moduleForFile(asPath); owner != "" && owner != "." {
		return owner
	}
	first, _, _ := strings.Cut(raw, ".")
	if root, ok := r.byName[first]; ok {
		return root.ID
	}
	return ""
}

// resolveRust matches the leading crate segment of a use declaration.
// crate/self/super paths stay inside the importing crate.
func (r *resolver) resolveRust(raw string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(raw), "::")
	switch first {
	case "crate", "self", "super", "std", "core", "alloc":
		return ""
	}
	// Cargo normalizes hyphens to underscores in crate names.
	if root, ok := r.byName[first]; ok {
		return root.ID
	}
	if root, ok := r.byName[strings.ReplaceAll(first, "_", "-")]; ok {
		return root.ID
	}
	return ""
}

// resolveJava looks for the longest declared package prefix.
func (r *resolver) resolveJava(raw string) string {
	best := ""
	var bestRoot *ModuleRoot
	for name, root := range r.byName {
		if root.Language != LanguageJava && root.Language != "" {
			continue
		}
		if (raw == name || strings.HasPrefix(raw, name+".")) && len(name) > len(best) {
			best = name
			bestRoot = root
		}
	}
	if bestRoot != nil {
		return bestRoot.ID
	}
	return ""
}

// resolveDart handles package: URIs; anything else is an SDK import.
func (r *resolver) resolveDart(raw string) string {
	rest, ok := strings.CutPrefix(raw, "package:")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(rest, "/")
	if root, ok := r.byName[name]; ok {
		return root.ID
	}
	return ""
}
