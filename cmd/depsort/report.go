package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"depsort/internal/diag"
	"depsort/internal/document"
	"depsort/internal/driver"
	"depsort/internal/engine"
	"depsort/internal/workspace"
)

type reportFormat string

const (
	reportText reportFormat = "text"
	reportJSON reportFormat = "json"
	reportYAML reportFormat = "yaml"
)

func parseReportFormat(s string) (reportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return reportText, nil
	case "json":
		return reportJSON, nil
	case "yaml", "yml":
		return reportYAML, nil
	}
	return "", fmt.Errorf("unsupported report format %q (must be text, json or yaml)", s)
}

type report struct {
	Mode      string           `json:"mode" yaml:"mode"`
	Failed    bool             `json:"failed" yaml:"failed"`
	Manifests []manifestReport `json:"manifests" yaml:"manifests"`
}

type manifestReport struct {
	Path        string   `json:"path" yaml:"path"`
	Crate       string   `json:"crate" yaml:"crate"`
	Sorted      bool     `json:"sorted" yaml:"sorted"`
	Formatted   bool     `json:"formatted" yaml:"formatted"`
	Changed     bool     `json:"changed" yaml:"changed"`
	Written     bool     `json:"written" yaml:"written"`
	Cached      bool     `json:"cached,omitempty" yaml:"cached,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

	diags []*diag.Diagnostic
	err   error
}

func newReport(mode driver.Mode, results []driver.Result) report {
	rep := report{Mode: mode.String(), Manifests: make([]manifestReport, 0, len(results))}
	for _, r := range results {
		mr := manifestReport{
			Path:      r.Path,
			Crate:     r.Crate,
			Sorted:    r.Sorted,
			Formatted: r.Formatted,
			Changed:   r.Changed,
			Written:   r.Written,
			Cached:    r.Cached,
			diags:     diagnosticsFor(r, mode),
			err:       r.Err,
		}
		for _, d := range mr.diags {
			mr.Diagnostics = append(mr.Diagnostics, d.Golden())
		}
		if r.Failed(mode) {
			rep.Failed = true
		}
		rep.Manifests = append(rep.Manifests, mr)
	}
	return rep
}

// diagnosticsFor classifies a result into coded diagnostics.
func diagnosticsFor(r driver.Result, mode driver.Mode) []*diag.Diagnostic {
	if r.Err != nil {
		var perr *document.ParseError
		if errors.As(r.Err, &perr) {
			return []*diag.Diagnostic{perr.Diagnostic()}
		}
		code := diag.IOLoadFileError
		switch {
		case errors.Is(r.Err, engine.ErrDataChanged):
			code = diag.ChkDataChanged
		case errors.Is(r.Err, workspace.ErrNotFound):
			code = diag.PrjManifestNotFound
		case errors.Is(r.Err, driver.ErrWrite):
			code = diag.IOWriteFileError
		}
		return []*diag.Diagnostic{{Severity: diag.SevError, Code: code, Message: r.Err.Error(), Path: r.Path}}
	}
	if mode != driver.ModeCheck {
		return nil
	}
	var out []*diag.Diagnostic
	if !r.Sorted {
		out = append(out, &diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.ChkUnsorted,
			Message:  fmt.Sprintf("Dependencies for %s are not sorted", r.Crate),
			Path:     r.Path,
		})
	}
	if !r.Formatted {
		out = append(out, &diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.ChkUnformatted,
			Message:  fmt.Sprintf("Cargo.toml for %s is not formatted", r.Crate),
			Path:     r.Path,
		})
	}
	return out
}

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	errorColor = color.New(color.FgRed, color.Bold)
)

// writeText prints the cargo-sort style progress lines. Errors go to errw.
func writeText(out, errw io.Writer, rep report, quiet bool) error {
	for _, m := range rep.Manifests {
		if !quiet {
			if _, err := fmt.Fprintf(out, "%s %s...\n", okColor.Sprint("Checking"), m.Crate); err != nil {
				return err
			}
		}
		if m.err != nil {
			fmt.Fprintf(errw, "%s%v\n", errorColor.Sprint("error: "), m.err)
			for _, d := range m.diags {
				fmt.Fprint(errw, d.Snippet())
			}
			continue
		}
		if rep.Mode == driver.ModeCheck.String() {
			for _, d := range m.diags {
				fmt.Fprintf(errw, "%s%s\n", errorColor.Sprint("error: "), d.Message)
			}
			continue
		}
		if quiet {
			continue
		}
		var err error
		if m.Written {
			_, err = fmt.Fprintf(out, "%s Cargo.toml for %q has been rewritten\n", okColor.Sprint("Finished:"), m.Crate)
		} else {
			_, err = fmt.Fprintf(out, "%s Cargo.toml for %s is sorted already, no changes made\n", okColor.Sprint("Finished:"), m.Crate)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// writePrinted emits the final text of every manifest in input order.
func writePrinted(out, errw io.Writer, results []driver.Result) error {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(errw, "%s%v\n", errorColor.Sprint("error: "), r.Err)
			continue
		}
		if _, err := out.Write(r.Output); err != nil {
			return err
		}
	}
	return nil
}

func writeStructured(out io.Writer, rep report, format reportFormat) error {
	switch format {
	case reportJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case reportYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported report format %q", format)
}
