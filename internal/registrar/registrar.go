package registrar

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultSetupFunc is the function whose body receives registrations.
const DefaultSetupFunc = "setup"

// ErrPatchSkipped is wrapped by every non-fatal reason the file was left alone.
var ErrPatchSkipped = errors.New("registration skipped")

var importStatement = regexp.MustCompile(`import [^;]+;`)

// Registration describes what to add to the registry file.
type Registration struct {
	// Import is the full import line, including the trailing ';'.
	Import string
	// Line is the registration line inserted into the setup body.
	Line string
}

// PresenterRegistration returns the import and lazy-singleton lines for a
// generated presenter.
func PresenterRegistration(presenterImport, classPrefix string) Registration {
	return Registration{
		Import: fmt.Sprintf("import '%s';", presenterImport),
		Line:   fmt.Sprintf("      ..registerLazySingleton(() => loadPresenter(%sPresenter()))", classPrefix),
	}
}

// Result reports what Apply changed.
type Result struct {
	Path           string
	ImportAdded    bool
	Registered     bool
	AlreadyPresent bool
}

// Patcher applies registrations to a registry file.
type Patcher struct {
	// Path is the registry file, e.g. lib/core/di/setup/presenter_setup.dart.
	Path string
	// SetupFunc names the function to patch. Defaults to "setup".
	SetupFunc string
}

// Apply reads the registry file, patches it and writes it back. The returned
// error wraps ErrPatchSkipped when the file is missing or has no usable
// insertion point; in that case the file is not modified.
func (p *Patcher) Apply(reg Registration) (*Result, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: could not find %s", ErrPatchSkipped, p.Path)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrPatchSkipped, p.Path, err)
	}

	content, res, err := Patch(string(data), p.setupFunc(), reg)
	if err != nil {
		return nil, err
	}
	res.Path = p.Path
	if res.AlreadyPresent {
		return res, nil
	}

	info, err := os.Stat(p.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPatchSkipped, err)
	}
	if err := os.WriteFile(p.Path, []byte(content), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %v", ErrPatchSkipped, p.Path, err)
	}
	return res, nil
}

func (p *Patcher) setupFunc() string {
	if p.SetupFunc == "" {
		return DefaultSetupFunc
	}
	return p.SetupFunc
}

// Patch returns content with reg applied. The import is added after the last
// import statement unless already present verbatim; the registration line is
// inserted on its own line before the first ';' of setupFunc's body.
//
// A registration line already inside setupFunc's body is not inserted again.
// Copies elsewhere in the file, such as in comments, do not count. When both
// the import and the line are already present, content is returned unchanged
// with Result.AlreadyPresent set.
func Patch(content, setupFunc string, reg Registration) (string, *Result, error) {
	res := &Result{}

	if !strings.Contains(content, reg.Import) {
		if locs := importStatement.FindAllStringIndex(content, -1); len(locs) > 0 {
			end := locs[len(locs)-1][1]
			content = content[:end] + "\n" + reg.Import + content[end:]
			res.ImportAdded = true
		}
	}

	bodyStart, bodyEnd, err := setupBody(content, setupFunc)
	if err != nil {
		return "", nil, err
	}
	body := content[bodyStart:bodyEnd]

	if strings.Contains(body, reg.Line) {
		if !res.ImportAdded {
			res.AlreadyPresent = true
		}
		return content, res, nil
	}

	i := strings.IndexByte(body, ';')
	if i < 0 {
		return "", nil, fmt.Errorf("%w: could not find semicolon in %s method", ErrPatchSkipped, setupFunc)
	}
	pos := bodyStart + i

	content = content[:pos] + "\n" + reg.Line + content[pos:]
	res.Registered = true
	return content, res, nil
}

// setupBody returns the span between the braces of setupFunc's body.
func setupBody(content, setupFunc string) (start, end int, err error) {
	signature := regexp.MustCompile(`\b` + regexp.QuoteMeta(setupFunc) + `\(\s*\)[^{;}]*\{`)
	loc := signature.FindStringIndex(content)
	if loc == nil {
		return 0, 0, fmt.Errorf("%w: could not find %s method", ErrPatchSkipped, setupFunc)
	}

	start = loc[1]
	end, ok := matchBrace(content, start)
	if !ok {
		return 0, 0, fmt.Errorf("%w: unbalanced braces in %s method", ErrPatchSkipped, setupFunc)
	}
	return start, end, nil
}

// matchBrace scans from start, just past an opening '{', and returns the
// offset of its matching '}'.
func matchBrace(content string, start int) (int, bool) {
	depth := 1
	for i := start; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
