package modules

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"depscope/internal/config"
	"depscope/internal/errors"
	"depscope/internal/logging"
)

// languagePattern defines import extraction patterns for one language.
type languagePattern struct {
	extensions []string
	patterns   []*regexp.Regexp
}

// Go imports are scanned statefully (see scanGoImports) so quoted string
// lines outside import blocks are not mistaken for imports.
var (
	goImportSingle    = regexp.MustCompile(`^\s*import\s+(?:[\w.]+\s+)?"([^"]+)"`)
	goImportBlockOpen = regexp.MustCompile(`^\s*import\s*\(\s*$`)
	goImportMember    = regexp.MustCompile(`^\s*(?:[\w.]+\s+)?"([^"]+)"\s*$`)
)

var builtinPatterns = map[string]*languagePattern{
	LanguageGo: {
		extensions: []string{".go"},
	},
	LanguageTypeScript: {
		extensions: []string{".ts", ".tsx"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`import\s+.*?from\s+['"]([^'"]+)['"]`),
			regexp.MustCompile(`export\s+.*?from\s+['"]([^'"]+)['"]`),
			regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`),
			regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`),
		},
	},
	LanguageJavaScript: {
		extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`import\s+.*?from\s+['"]([^'"]+)['"]`),
			regexp.MustCompile(`export\s+.*?from\s+['"]([^'"]+)['"]`),
			regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`),
		},
	},
	LanguagePython: {
		extensions: []string{".py"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*from\s+([^\s]+)\s+import`),
			regexp.MustCompile(`^\s*import\s+([^\s,;]+)`),
		},
	},
	LanguageRust: {
		extensions: []string{".rs"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*use\s+([^;{]+)`),
		},
	},
	LanguageJava: {
		extensions: []string{".java"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`import\s+(?:static\s+)?([^;]+);`),
		},
	},
	LanguageDart: {
		extensions: []string{".dart"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`import\s+['"]([^'"]+)['"]`),
			regexp.MustCompile(`export\s+['"]([^'"]+)['"]`),
		},
	},
}

// Scanner extracts import statements from source trees by regex; no AST
// parsing, matching the accuracy/latency tradeoff the CLI wants.
type Scanner struct {
	cfg    *config.ScanConfig
	logger *logging.Logger
}

// NewScanner creates an import scanner.
func NewScanner(cfg *config.ScanConfig, logger *logging.Logger) *Scanner {
	return &Scanner{cfg: cfg, logger: logger}
}

// ScanFile scans a single file for imports. Returns nil edges for
// unsupported or oversized files.
func (s *Scanner) ScanFile(filePath, repoRoot string) ([]*ImportEdge, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, errors.NewDepscopeError(errors.ScanFailed, "cannot stat file", err)
	}
	if info.Size() > int64(s.cfg.MaxFileSizeBytes) {
		s.logger.Debug("Skipping file: too large", map[string]interface{}{
			"file": filePath,
			"size": info.Size(),
		})
		return nil, nil
	}

	language := detectLanguage(filePath)
	if language == "" {
		return nil, nil
	}
	pattern := builtinPatterns[language]

	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.NewDepscopeError(errors.ScanFailed, "cannot open file", err)
	}
	defer func() { _ = file.Close() }()

	rel, err := filepath.Rel(repoRoot, filePath)
	if err != nil {
		rel = filePath
	}
	rel = filepath.ToSlash(rel)

	var edges []*ImportEdge
	scanner := bufio.NewScanner(file)
	lineNum := 0
	inImportBlock := false
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		var found []string
		if language == LanguageGo {
			found = scanGoImports(line, &inImportBlock)
		} else {
			for _, re := range pattern.patterns {
				for _, match := range re.FindAllStringSubmatch(line, -1) {
					if len(match) >= 2 {
						found = append(found, match[1])
					}
				}
			}
		}
		for _, importStr := range found {
			importStr = strings.TrimSpace(importStr)
			if importStr == "" {
				continue
			}
			edges = append(edges, &ImportEdge{
				FromFile:  rel,
				RawImport: importStr,
				Line:      lineNum,
				Language:  language,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewDepscopeError(errors.ScanFailed, "error reading file", err)
	}

	return edges, nil
}

// ScanDirectory walks dirPath and scans every supported source file.
// Per-file errors are logged and skipped so one unreadable file does not
// sink the run.
func (s *Scanner) ScanDirectory(dirPath, repoRoot string) ([]*ImportEdge, error) {
	ignore := make(map[string]bool, len(s.cfg.Ignore))
	for _, d := range s.cfg.Ignore {
		ignore[d] = true
	}

	var allEdges []*ImportEdge
	filesScanned := 0

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if ignore[d.Name()] || strings.HasPrefix(d.Name(), ".") && path != dirPath {
				return filepath.SkipDir
			}
			return nil
		}
		if filesScanned >= s.cfg.MaxFiles {
			s.logger.Warn("Reached max files limit during import scan", map[string]interface{}{
				"maxFiles": s.cfg.MaxFiles,
			})
			return filepath.SkipAll
		}

		edges, scanErr := s.ScanFile(path, repoRoot)
		if scanErr != nil {
			s.logger.Warn("Error scanning file", map[string]interface{}{
				"file":  path,
				"error": scanErr.Error(),
			})
			return nil
		}
		allEdges = append(allEdges, edges...)
		filesScanned++
		return nil
	})
	if err != nil {
		return nil, errors.NewDepscopeError(errors.ScanFailed, "directory walk failed", err)
	}

	s.logger.Info("Import scan completed", map[string]interface{}{
		"filesScanned": filesScanned,
		"importsFound": len(allEdges),
	})

	return allEdges, nil
}

// scanGoImports extracts import paths from one Go source line. Block
// members only count between an `import (` line and its closing paren,
// so string literals elsewhere in the file produce no edges.
func scanGoImports(line string, inBlock *bool) []string {
	if *inBlock {
		if strings.TrimSpace(line) == ")" {
			*inBlock = false
			return nil
		}
		if m := goImportMember.FindStringSubmatch(line); m != nil {
			return []string{m[1]}
		}
		return nil
	}
	if goImportBlockOpen.MatchString(line) {
		*inBlock = true
		return nil
	}
	if m := goImportSingle.FindStringSubmatch(line); m != nil {
		return []string{m[1]}
	}
	return nil
}

// detectLanguage detects language from file extension.
func detectLanguage(filePath string) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	for language, pattern := range builtinPatterns {
		for _, pe := range pattern.extensions {
			if ext == pe {
				return language
			}
		}
	}
	return ""
}
