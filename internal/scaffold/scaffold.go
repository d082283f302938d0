package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

// PresentationDir is the directory, relative to the project root, that holds
// one subdirectory per page.
const PresentationDir = "lib/presentation"

var pageNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ErrEmptyPageName is returned when no page name is given.
var ErrEmptyPageName = errors.New("page name is required")

// FileSystemError reports a failed directory creation or file write.
type FileSystemError struct {
	Op   string // "create directory" or "write"
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

// PageData holds all template variables available to page templates.
type PageData struct {
	ProjectName string // e.g., "shop_app"
	PageName    string // lower-cased, e.g., "login"
	ClassPrefix string // e.g., "Login"
}

// NewPageData normalizes pageName and derives the class prefix.
func NewPageData(projectName, pageName string) (*PageData, error) {
	if pageName == "" {
		return nil, ErrEmptyPageName
	}
	if projectName == "" {
		return nil, errors.New("project name is required")
	}

	name := strings.ToLower(pageName)
	if !pageNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid page name %q: must start with a letter and match [a-z][a-z0-9_]*", pageName)
	}

	return &PageData{
		ProjectName: projectName,
		PageName:    name,
		ClassPrefix: Capitalize(name),
	}, nil
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// PageDir returns the page root relative to the project root.
func (d *PageData) PageDir() string {
	return path.Join(PresentationDir, d.PageName)
}

// PresenterImport returns the package import path of the generated presenter.
func (d *PageData) PresenterImport() string {
	return fmt.Sprintf("package:%s/presentation/%s/presenter/%s_presenter.dart",
		d.ProjectName, d.PageName, d.PageName)
}

// Result holds the outcome of a page generation. Paths are slash-separated
// and relative to the project root.
type Result struct {
	PageDir string
	Dirs    []string
	Files   []string
}

type pageFile struct {
	template string
	out      func(d *PageData) string
}

var pageDirs = []string{"presenter", "ui", "widgets"}

var pageFiles = []pageFile{
	{"presenter.dart.tmpl", func(d *PageData) string { return "presenter/" + d.PageName + "_presenter.dart" }},
	{"ui_state.dart.tmpl", func(d *PageData) string { return "presenter/" + d.PageName + "_ui_state.dart" }},
	{"page.dart.tmpl", func(d *PageData) string { return "ui/" + d.PageName + "_page.dart" }},
}

// Generate renders the page templates into the project rooted at root.
// Existing directories are reused and existing files are overwritten.
func Generate(data *PageData, root string) (*Result, error) {
	pageDir := data.PageDir()
	result := &Result{PageDir: pageDir}

	for _, dir := range pageDirs {
		rel := path.Join(pageDir, dir)
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(abs, 0755); err != nil {
			return nil, &FileSystemError{Op: "create directory", Path: abs, Err: err}
		}
		result.Dirs = append(result.Dirs, rel)
	}

	for _, f := range pageFiles {
		content, err := render(f.template, data)
		if err != nil {
			return nil, err
		}

		rel := path.Join(pageDir, f.out(data))
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.WriteFile(abs, content, 0644); err != nil {
			return nil, &FileSystemError{Op: "write", Path: abs, Err: err}
		}
		result.Files = append(result.Files, rel)
	}

	return result, nil
}

func render(name string, data *PageData) ([]byte, error) {
	tmplBytes, err := fs.ReadFile(templateFS, path.Join("templates", "page", name))
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
