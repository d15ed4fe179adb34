package modules

import (
	"bufio"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"depscope/internal/config"
	"depscope/internal/errors"
	"depscope/internal/logging"
)

// manifestFiles maps manifest filenames to the language they declare.
var manifestFiles = map[string]string{
	"go.mod":         LanguageGo,
	"package.json":   LanguageJavaScript,
	"Cargo.toml":     LanguageRust,
	"pyproject.toml": LanguagePython,
	"pubspec.yaml":   LanguageDart,
}

// DiscoverRoots walks repoRoot and returns one ModuleRoot per directory
// that carries a recognized manifest. When the tree has no manifests at
// all, top-level directories containing supported source files are
// treated as modules instead, so plain source trees still get a graph.
func DiscoverRoots(repoRoot string, cfg *config.ScanConfig, logger *logging.Logger) ([]*ModuleRoot, error) {
	ignore := make(map[string]bool, len(cfg.Ignore))
	for _, d := range cfg.Ignore {
		ignore[d] = true
	}

	var roots []*ModuleRoot

	err := filepath.WalkDir(repoRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if ignore[d.Name()] || strings.HasPrefix(d.Name(), ".") && path != repoRoot {
				return filepath.SkipDir
			}
			return nil
		}
		language, ok := manifestFiles[d.Name()]
		if !ok {
			return nil
		}

		rel, relErr := filepath.Rel(repoRoot, filepath.Dir(path))
		if relErr != nil {
			return nil
		}
		id := filepath.ToSlash(rel)

		name, parseErr := parseManifestName(path, d.Name())
		if parseErr != nil {
			logger.Warn("Cannot parse manifest, using directory name", map[string]interface{}{
				"manifest": path,
				"error":    parseErr.Error(),
			})
		}
		if name == "" {
			name = filepath.Base(filepath.Dir(path))
		}

		roots = append(roots, &ModuleRoot{
			ID:       id,
			Name:     name,
			Language: language,
			Manifest: filepath.ToSlash(filepath.Join(id, d.Name())),
		})
		return nil
	})
	if err != nil {
		return nil, errors.NewDepscopeError(errors.ScanFailed, "module root discovery failed", err)
	}

	if len(roots) == 0 {
		roots = fallbackRoots(repoRoot, ignore)
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].ID < roots[j].ID })

	logger.Info("Module roots discovered", map[string]interface{}{
		"count": len(roots),
	})
	return roots, nil
}

// parseManifestName extracts the declared module name from a manifest.
func parseManifestName(path, base string) (string, error) {
	switch base {
	case "go.mod":
		return parseGoModule(path)
	case "package.json":
		return parsePackageJSON(path)
	case "Cargo.toml":
		return parseTOMLName(path, "package")
	case "pyproject.toml":
		return parseTOMLName(path, "project")
	case "pubspec.yaml":
		return parseYAMLName(path)
	}
	return "", nil
}

// parseGoModule reads the module directive from a go.mod file.
func parseGoModule(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "module "); ok {
			return strings.TrimSpace(rest), nil
		}
	}
	return "", scanner.Err()
}

func parsePackageJSON(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var manifest struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", err
	}
	return manifest.Name, nil
}

// parseTOMLName reads the name field from the given table of a TOML
// manifest. Covers both Cargo.toml ([package]) and pyproject.toml
// ([project]).
func parseTOMLName(path, table string) (string, error) {
	var doc map[string]struct {
		Name string `toml:"name"`
	}
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return "", err
	}
	return doc[table].Name, nil
}

// parseYAMLName reads the top-level name field from pubspec.yaml. A line
// scan is enough; pubspec names are always simple scalars.
func parseYAMLName(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if rest, ok := strings.CutPrefix(line, "name:"); ok {
			return strings.TrimSpace(rest), nil
		}
	}
	return "", scanner.Err()
}

// fallbackRoots treats each top-level directory holding supported source
// files as a module, with the repo root itself owning stray files.
func fallbackRoots(repoRoot string, ignore map[string]bool) []*ModuleRoot {
	entries, err := os.ReadDir(repoRoot)
	if err != nil {
		return nil
	}

	var roots []*ModuleRoot
	rootHasSource := false
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			if detectLanguage(name) != "" {
				rootHasSource = true
			}
			continue
		}
		if ignore[name] || strings.HasPrefix(name, ".") {
			continue
		}
		if dirHasSource(filepath.Join(repoRoot, name), ignore) {
			roots = append(roots, &ModuleRoot{
				ID:       name,
				Name:     name,
				Language: "",
			})
		}
	}
	if rootHasSource {
		roots = append(roots, &ModuleRoot{ID: ".", Name: filepath.Base(repoRoot)})
	}
	return roots
}

func dirHasSource(dir string, ignore map[string]bool) bool {
	found := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if ignore[d.Name()] || strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if detectLanguage(path) != "" {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
