package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdexport/internal/hints"
	"github.com/alnah/go-mdexport/internal/pdf"
)

// Doctor status values.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Fonts    fontInfo   `json:"fonts"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// fontInfo describes the faces PDF export would use.
type fontInfo struct {
	Source string `json:"source"` // "explicit", "system", "go fonts"
	Path   string `json:"path,omitempty"`
	CJK    bool   `json:"cjk"`
	Core   bool   `json:"core_fonts"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	GOMAXPROCS    int    `json:"gomaxprocs"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	var jsonOutput bool
	var cjkFont string

	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stdout)
	fs.Usage = func() { printDoctorUsage(env.Stdout) }
	fs.BoolVar(&jsonOutput, "json", false, "print results as JSON")
	fs.StringVar(&cjkFont, "cjk-font", "", "TrueType font to check instead of searching the system")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	if cjkFont == "" {
		cjkFont = env.Getenv("MDEXPORT_CJK_FONT")
	}

	result := runDoctor(cjkFont, env.Getenv)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(cjkFont string, getenv func(string) string) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			GOMAXPROCS: runtime.GOMAXPROCS(0),
		},
	}

	checkFonts(result, pdf.LoadFonts(cjkFont))
	checkEnvironment(result, getenv)
	checkSystem(result, os.TempDir())

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkFonts records the resolved font set. Missing Japanese coverage is a
// warning: documents still export, with blank glyphs.
func checkFonts(result *doctorResult, fonts *pdf.FontSet) {
	result.Fonts = fontInfo{
		Source: fonts.Source,
		Path:   fonts.Path,
		CJK:    fonts.HasCJK(),
		Core:   fonts.Core,
	}
	if w := fonts.Warning(); w != "" {
		result.Warnings = append(result.Warnings, w+hints.ForCJKFont())
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("MDEXPORT_CONTAINER") == "1" {
		return true, "MDEXPORT_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies that dir accepts the temporary files written
// before each output is renamed into place.
func checkSystem(result *doctorResult, dir string) {
	f, err := os.CreateTemp(dir, ".mdexport-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", dir))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdexport doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Fonts")
	switch {
	case r.Fonts.Path != "":
		fmt.Fprintf(w, "  [OK] Body font: %s (%s)\n", filepath.Base(r.Fonts.Path), r.Fonts.Source)
	default:
		fmt.Fprintf(w, "  [OK] Body font: %s\n", r.Fonts.Source)
	}
	if r.Fonts.CJK {
		fmt.Fprintln(w, "  [OK] Japanese glyphs: available")
	} else {
		fmt.Fprintln(w, "  [WARN] Japanese glyphs: missing")
	}
	if r.Fonts.Core {
		fmt.Fprintln(w, "  [WARN] Embedding: failed, using core PDF fonts")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] GOMAXPROCS: %d\n", r.Env.GOMAXPROCS)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to export")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
