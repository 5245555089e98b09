package architecture_test

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// layers lists, for each package prefix under internal/, the internal prefixes it must not import.
// Test files are exempt since they wire concrete stores.
var layers = []struct {
	prefix     string
	disallowed []string
}{
	{"internal/platform/", []string{"domain/", "data/", "personalization/", "services/", "http/", "app/", "clients/", "observability/"}},
	{"internal/domain/", []string{"data/", "personalization/", "services/", "http/", "app/", "clients/", "observability/"}},
	{"internal/data/", []string{"personalization/", "services/", "http/", "app/", "clients/"}},
	{"internal/personalization/", []string{"services/", "http/", "app/", "clients/"}},
	{"internal/services/", []string{"http/", "app/", "clients/"}},
	{"internal/http/", []string{"app/", "clients/", "data/repos/", "data/db/"}},
	{"internal/clients/", []string{"domain/", "data/", "personalization/", "services/", "http/", "app/"}},
}

type importRef struct {
	file string
	imp  string
}

func TestImportBoundaries(t *testing.T) {
	root, modulePath := moduleRoot(t)

	var violations []string
	walkImports(t, root, func(rel string, imports []string) {
		for _, l := range layers {
			if !strings.HasPrefix(rel, l.prefix) {
				continue
			}
			for _, imp := range imports {
				for _, bad := range l.disallowed {
					if strings.HasPrefix(imp, modulePath+"/internal/"+bad) {
						violations = append(violations, fmt.Sprintf("- %s imports %q (disallowed: internal/%s)", rel, imp, bad))
					}
				}
			}
		}
	})
	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n%s", strings.Join(violations, "\n"))
	}
}

func TestClientsOnlyImportedByApp(t *testing.T) {
	root, modulePath := moduleRoot(t)

	var violations []importRef
	walkImports(t, root, func(rel string, imports []string) {
		if strings.HasPrefix(rel, "internal/clients/") || strings.HasPrefix(rel, "internal/app/") {
			return
		}
		for _, imp := range imports {
			if strings.HasPrefix(imp, modulePath+"/internal/clients/") {
				violations = append(violations, importRef{file: rel, imp: imp})
			}
		}
	})
	if len(violations) > 0 {
		var b strings.Builder
		b.WriteString("internal/clients imports found outside internal/app:\n")
		for _, v := range violations {
			fmt.Fprintf(&b, "- %s imports %q\n", v.file, v.imp)
		}
		t.Fatal(b.String())
	}
}

func moduleRoot(t *testing.T) (string, string) {
	t.Helper()
	start, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	root, err := findModuleRoot(start)
	if err != nil {
		t.Fatalf("find module root: %v", err)
	}
	modulePath, err := readModulePath(filepath.Join(root, "go.mod"))
	if err != nil {
		t.Fatalf("read module path: %v", err)
	}
	return root, modulePath
}

// walkImports calls fn with the module-relative path and import paths of every non-test Go file under internal/.
func walkImports(t *testing.T, root string, fn func(rel string, imports []string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(filepath.Join(root, "internal"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "vendor", "testdata":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		imports := make([]string, 0, len(f.Imports))
		for _, spec := range f.Imports {
			if imp, err := strconv.Unquote(spec.Path.Value); err == nil {
				imports = append(imports, imp)
			}
		}
		fn(filepath.ToSlash(rel), imports)
		return nil
	})
	if err != nil {
		t.Fatalf("walk internal/: %v", err)
	}
}

func findModuleRoot(start string) (string, error) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found from %s", start)
		}
		dir = parent
	}
}

func readModulePath(goModPath string) (string, error) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if !strings.HasPrefix(line, "module ") {
			continue
		}
		mp := strings.TrimSpace(strings.TrimPrefix(line, "module "))
		if mp == "" {
			return "", fmt.Errorf("empty module path in %s", goModPath)
		}
		return mp, nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("module path not found in %s", goModPath)
}
