package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/flutterkit-labs/flutterkit/internal/progress"
	"github.com/flutterkit-labs/flutterkit/internal/ui"
)

// ErrStepsFailed is returned when at least one step of a command failed.
var ErrStepsFailed = errors.New("one or more steps failed")

// Runner runs steps and draws their status. *progress.Supervisor implements it.
type Runner interface {
	Run(ctx context.Context, step progress.Step) *progress.Outcome
	Mark(description string, ok bool)
}

// Command describes a dispatcher command for usage output.
type Command struct {
	Name  string
	Short string
}

// Commands lists the toolchain commands in usage order.
var Commands = []Command{
	{"apk", "Build release APK (Full Process)"},
	{"aab", "Build release AAB"},
	{"lang", "Generate localization files"},
	{"db", "Run build_runner"},
	{"setup", "Perform full project setup"},
	{"cache-repair", "Repair pub cache"},
	{"cleanup", "Clean project and get dependencies"},
	{"release-run", "Build & install release APK on connected device"},
	{"pod", "Update iOS pods"},
}

// Report collects the outcomes of one command.
type Report struct {
	Command  string
	Outcomes []*progress.Outcome
	// Stopped is set when fail-fast ended the command early.
	Stopped bool
}

// Failed returns the unsuccessful outcomes in run order.
func (r *Report) Failed() []*progress.Outcome {
	var failed []*progress.Outcome
	for _, o := range r.Outcomes {
		if !o.Success() {
			failed = append(failed, o)
		}
	}
	return failed
}

// OK reports whether every step succeeded.
func (r *Report) OK() bool { return len(r.Failed()) == 0 }

// Dispatcher maps command names to step pipelines.
type Dispatcher struct {
	Tools  Tools
	Runner Runner
	Out    io.Writer
	Theme  ui.Theme
	// Root is the project directory; empty means the working directory.
	Root string
	// FailFast stops a command at its first failed step. Otherwise later
	// steps still run and the failures are reported at the end.
	FailFast bool
	// OpenDir opens a directory in the platform file browser. Nil disables it.
	OpenDir func(dir string) error
}

// Run executes the named command. The returned error wraps ErrStepsFailed
// when any step failed; the report is returned either way.
func (d *Dispatcher) Run(ctx context.Context, name string) (*Report, error) {
	switch strings.ToLower(name) {
	case "apk":
		return d.buildAPK(ctx)
	case "aab":
		return d.buildAAB(ctx)
	case "lang":
		return d.generateLang(ctx)
	case "db":
		return d.runBuildRunner(ctx)
	case "setup":
		return d.fullSetup(ctx)
	case "cache-repair":
		return d.repairCache(ctx)
	case "cleanup":
		return d.cleanup(ctx)
	case "release-run":
		return d.releaseRun(ctx)
	case "pod":
		return d.updatePods(ctx)
	default:
		return nil, fmt.Errorf("unknown command %q", name)
	}
}

func (d *Dispatcher) buildAPK(ctx context.Context) (*Report, error) {
	d.Theme.Heading(d.Out, "Building APK (Full Process)...")
	t := d.Tools
	r := &Report{Command: "apk"}
	d.steps(ctx, r, t.Clean(), t.PubGet(), t.BuildRunner("Generating build files..."), t.BuildAPK())
	return d.finish(r, "APK built successfully!", func() {
		d.showAPKSize()
		d.open(APKDir)
	})
}

func (d *Dispatcher) buildAAB(ctx context.Context) (*Report, error) {
	d.Theme.Heading(d.Out, "Building AAB...")
	t := d.Tools
	r := &Report{Command: "aab"}
	d.steps(ctx, r, t.Clean(), t.PubGet(), t.BuildRunner("Generating build files..."), t.BuildAAB())
	return d.finish(r, "AAB built successfully!", func() {
		d.open(AABDir)
	})
}

func (d *Dispatcher) generateLang(ctx context.Context) (*Report, error) {
	r := &Report{Command: "lang"}
	d.steps(ctx, r, d.Tools.GenL10n("Generating localizations"))
	return d.finish(r, "Localizations generated successfully.", nil)
}

func (d *Dispatcher) runBuildRunner(ctx context.Context) (*Report, error) {
	d.Theme.Heading(d.Out, "Executing build_runner...")
	r := &Report{Command: "db"}
	d.steps(ctx, r, d.Tools.BuildRunner("Running build_runner"))
	return d.finish(r, "build_runner completed successfully.", nil)
}

func (d *Dispatcher) fullSetup(ctx context.Context) (*Report, error) {
	d.Theme.Heading(d.Out, "Performing full setup...")
	t := d.Tools
	r := &Report{Command: "setup"}
	d.steps(ctx, r,
		t.Clean(),
		t.PubUpgrade("Upgrading dependencies..."),
		t.BuildRunner("Running build_runner..."),
		t.GenL10n("Generating localizations..."),
		t.PubUpgrade("Refreshing dependencies..."),
		t.Analyze(),
		t.Format(),
	)
	return d.finish(r, "Full setup completed successfully.", nil)
}

func (d *Dispatcher) repairCache(ctx context.Context) (*Report, error) {
	d.Theme.Heading(d.Out, "Repairing pub cache...")
	r := &Report{Command: "cache-repair"}
	d.steps(ctx, r, d.Tools.CacheRepair())
	return d.finish(r, "Pub cache repaired successfully.", nil)
}

func (d *Dispatcher) cleanup(ctx context.Context) (*Report, error) {
	d.Theme.Heading(d.Out, "Cleaning up project...")
	t := d.Tools
	r := &Report{Command: "cleanup"}
	d.steps(ctx, r, t.Clean(), t.PubGet())
	return d.finish(r, "Project cleaned successfully!", nil)
}

func (d *Dispatcher) releaseRun(ctx context.Context) (*Report, error) {
	d.Theme.Heading(d.Out, "Building & Installing Release APK...")
	t := d.Tools
	r := &Report{Command: "release-run"}
	if d.steps(ctx, r,
		t.Clean(),
		t.PubGet(),
		t.GenL10n("Generating localizations..."),
		t.BuildRunner("Generating build files..."),
		t.BuildAPK(),
	) {
		d.showAPKSize()
		d.steps(ctx, r, t.Install())
	}
	return d.finish(r, "APK built and installed successfully!", nil)
}

func (d *Dispatcher) updatePods(ctx context.Context) (*Report, error) {
	d.Theme.Heading(d.Out, "Updating iOS pods...")
	iosDir := filepath.Join(d.Root, IOSDir)
	if info, err := os.Stat(iosDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("pod: %s directory not found", iosDir)
	}

	r := &Report{Command: "pod"}
	lock := filepath.Join(iosDir, "Podfile.lock")
	if err := os.Remove(lock); err == nil {
		d.Runner.Mark("Removing Podfile.lock", true)
	} else if !os.IsNotExist(err) {
		d.Runner.Mark("Removing Podfile.lock", false)
		r.Outcomes = append(r.Outcomes, &progress.Outcome{
			Step:     progress.Step{Description: "Removing Podfile.lock", Name: "remove", Args: []string{lock}},
			ExitCode: -1,
			Err:      err,
		})
		if d.FailFast {
			r.Stopped = true
		}
	}

	t := d.Tools
	d.steps(ctx, r, t.PodRepoUpdate(d.Root), t.PodInstall(d.Root))
	return d.finish(r, "iOS pods updated successfully!", nil)
}

// steps runs each step in order and reports whether all of them ran. A
// failure stops the sequence only in fail-fast mode.
func (d *Dispatcher) steps(ctx context.Context, r *Report, steps ...progress.Step) bool {
	for _, step := range steps {
		if r.Stopped {
			return false
		}
		if step.Dir == "" {
			step.Dir = d.Root
		}
		out := d.Runner.Run(ctx, step)
		r.Outcomes = append(r.Outcomes, out)
		if ctx.Err() != nil || (!out.Success() && d.FailFast) {
			r.Stopped = true
			return false
		}
	}
	return true
}

func (d *Dispatcher) finish(r *Report, success string, after func()) (*Report, error) {
	fmt.Fprintln(d.Out)
	if r.OK() && !r.Stopped {
		d.Theme.Success(d.Out, success)
		if after != nil {
			after()
		}
		return r, nil
	}

	failed := r.Failed()
	d.Theme.Error(d.Out, "%d of %d steps failed", len(failed), len(r.Outcomes))
	for _, o := range failed {
		fmt.Fprintf(d.Out, "  %s %s: %s\n", d.Theme.Cross(), o.Step, failureReason(o))
		for _, line := range tail(o.Stderr, 5) {
			fmt.Fprintf(d.Out, "      %s\n", line)
		}
	}
	if r.Stopped {
		fmt.Fprintln(d.Out, "  Stopped after the first failure.")
	}
	return r, fmt.Errorf("%s: %w", r.Command, ErrStepsFailed)
}

func (d *Dispatcher) showAPKSize() {
	path := filepath.Join(d.Root, filepath.FromSlash(APKFile))
	size, err := ArtifactSize(path)
	if err != nil {
		fmt.Fprintln(d.Out, d.Theme.Red("APK file not found at "+APKFile))
		return
	}
	fmt.Fprintln(d.Out, d.Theme.Blue("APK Size: "+size))
}

func (d *Dispatcher) open(dir string) {
	if d.OpenDir == nil {
		return
	}
	path := filepath.Join(d.Root, filepath.FromSlash(dir))
	if err := d.OpenDir(path); err != nil {
		fmt.Fprintf(d.Out, "Error opening directory: %v\n", err)
		fmt.Fprintf(d.Out, "Please check: %s\n", path)
	}
}

func failureReason(o *progress.Outcome) string {
	if o.Err != nil {
		return o.Err.Error()
	}
	return fmt.Sprintf("exited with code %d", o.ExitCode)
}

// tail returns the last n non-empty lines of s.
func tail(s string, n int) []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(s), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
