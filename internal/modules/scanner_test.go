package modules

import (
	"os"
	"path/filepath"
	"testing"

	"depscope/internal/config"
	"depscope/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
	})
}

func testScanConfig() *config.ScanConfig {
	cfg := config.DefaultConfig().Scan
	return &cfg
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestScanFileGo(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", `package main

import (
	"fmt"
	cfg "example.com/app/config"
)

import "os"

func main() { fmt.Println(cfg.Load(), os.Args) }
`)

	scanner := NewScanner(testScanConfig(), testLogger())
	edges, err := scanner.ScanFile(path, dir)
	if err != nil {
		t.Fatalf("ScanFile failed: %v", err)
	}

	got := make(map[string]bool)
	for _, e := range edges {
		got[e.RawImport] = true
		if e.Language != LanguageGo {
			t.Errorf("language = %s, want go", e.Language)
		}
		if e.FromFile != "main.go" {
			t.Errorf("fromFile = %s, want main.go", e.FromFile)
		}
	}
	for _, want := range []string{"fmt", "example.com/app/config", "os"} {
		if !got[want] {
			t.Errorf("missing import %q in %v", want, edges)
		}
	}
}

func TestScanFileTypeScript(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "src/index.ts", `import { x } from './util';
export { y } from '../shared/types';
const z = require('lodash');
`)

	scanner := NewScanner(testScanConfig(), testLogger())
	edges, err := scanner.ScanFile(path, dir)
	if err != nil {
		t.Fatalf("ScanFile failed: %v", err)
	}
	if len(edges) != 3 {
		t.Fatalf("got %d imports, want 3: %v", len(edges), edges)
	}
	if edges[0].FromFile != "src/index.ts" {
		t.Errorf("fromFile = %s, want src/index.ts", edges[0].FromFile)
	}
}

func TestScanFileGoIgnoresStringLiterals(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "paths.go", `package paths

import (
	"fmt"
)

const defaultRoute = "" +
	"api/v1/routes"

var templates = map[string]string{
	"greeting": "hello",
}

func route() string { return fmt.Sprint("api/v2") }
`)

	scanner := NewScanner(testScanConfig(), testLogger())
	edges, err := scanner.ScanFile(path, dir)
	if err != nil {
		t.Fatalf("ScanFile failed: %v", err)
	}
	if len(edges) != 1 || edges[0].RawImport != "fmt" {
		t.Errorf("edges = %v, want only the fmt import", edges)
	}
}

func TestScanFileUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "README.md", "# readme\n")

	scanner := NewScanner(testScanConfig(), testLogger())
	edges, err := scanner.ScanFile(path, dir)
	if err != nil {
		t.Fatalf("ScanFile failed: %v", err)
	}
	if edges != nil {
		t.Errorf("unsupported file produced imports: %v", edges)
	}
}

func TestScanFileTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "big.go", "package big\nimport \"fmt\"\nvar _ = fmt.Sprint\n")

	cfg := testScanConfig()
	cfg.MaxFileSizeBytes = 5

	scanner := NewScanner(cfg, testLogger())
	edges, err := scanner.ScanFile(path, dir)
	if err != nil {
		t.Fatalf("ScanFile failed: %v", err)
	}
	if edges != nil {
		t.Errorf("oversized file was scanned: %v", edges)
	}
}

func TestScanDirectoryIgnores(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "import requests\n")
	writeFile(t, dir, "node_modules/dep/index.js", "require('x')\n")
	writeFile(t, dir, ".hidden/skip.py", "import os\n")

	scanner := NewScanner(testScanConfig(), testLogger())
	edges, err := scanner.ScanDirectory(dir, dir)
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}
	if len(edges) != 1 || edges[0].RawImport != "requests" {
		t.Errorf("edges = %v, want only the requests import", edges)
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := map[string]string{
		"a.go":   LanguageGo,
		"a.ts":   LanguageTypeScript,
		"a.tsx":  LanguageTypeScript,
		"a.py":   LanguagePython,
		"a.rs":   LanguageRust,
		"a.java": LanguageJava,
		"a.dart": LanguageDart,
		"a.txt":  "",
	}
	for file, want := range cases {
		if got := detectLanguage(file); got != want {
			t.Errorf("detectLanguage(%s) = %q, want %q", file, got, want)
		}
	}
}
