// Package modules discovers module roots and derives module-level
// dependency edges from import statements. It is the edge source that
// feeds the analysis engine; the engine itself never touches the
// filesystem.
package modules

// Supported languages for import scanning
const (
	LanguageGo         = "go"
	LanguageTypeScript = "typescript"
	LanguageJavaScript = "javascript"
	LanguagePython     = "python"
	LanguageRust       = "rust"
	LanguageJava       = "java"
	LanguageDart       = "dart"
)

// ImportEdge is one raw import statement found in a source file.
type ImportEdge struct {
	FromFile  string `json:"fromFile"`  // repo-relative path of the importing file
	RawImport string `json:"rawImport"` // import string as written
	Line      int    `json:"line"`
	Language  string `json:"language"`
}

// ModuleRoot is a detected module: a directory owning source files,
// identified by its repo-relative root path.
type ModuleRoot struct {
	ID       string `json:"id"`       // repo-relative root path, canonical module id
	Name     string `json:"name"`     // declared name from the manifest, if any
	Language string `json:"language"` // dominant language hint from the manifest
	Manifest string `json:"manifest"` // manifest file that declared it, if any
}

// ModuleEdge is a deduplicated module-to-module dependency with the
// number of import statements backing it.
type ModuleEdge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Strength int    `json:"strength"`
}
