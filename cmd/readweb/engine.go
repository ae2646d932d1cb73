package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/readweb"
)

// Run executes the normalize command.
func (c *NormalizeCmd) Run(deps *Dependencies) error {
	markup, err := readInput(deps, c.Input)
	if err != nil {
		return err
	}

	doc, err := deps.Normalizer.Normalize(markup, c.BaseURL)
	if err != nil {
		return err
	}
	cleaned, err := doc.HTML()
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, cleaned)
	return nil
}

// Run executes the validate command. Critical problems make the command
// fail after the feedback is printed.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	preset, err := readPreset(deps, c.Preset)
	if err != nil {
		return err
	}
	doc, err := readDocument(deps, c.Input, c.BaseURL)
	if err != nil {
		return err
	}

	problems := doc.Validate(*preset)

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(problems); err != nil {
			return err
		}
	} else if problems.Empty() {
		fmt.Fprintln(deps.Stdout, "No problems found.")
	} else {
		fmt.Fprintln(deps.Stdout, readweb.RenderProblems(problems))
	}

	if problems.HasCritical() {
		return readweb.Errorf(readweb.EINVALID, "preset has %d critical problem(s)", len(problems.Critical))
	}
	return nil
}

// Run executes the apply command.
func (c *ApplyCmd) Run(deps *Dependencies) error {
	preset, err := readPreset(deps, c.Preset)
	if err != nil {
		return err
	}
	doc, err := readDocument(deps, c.Input, c.BaseURL)
	if err != nil {
		return err
	}

	var result readweb.ApplyResult
	if c.Unchecked {
		result = doc.ApplyUnchecked(*preset)
	} else {
		result = doc.Apply(*preset)
	}

	ok, isOK := result.(readweb.ApplyOK)
	if !isOK {
		fmt.Fprintln(deps.Stderr, readweb.RenderApplyFailure(result))
		return readweb.Errorf(readweb.EINVALID, "preset does not apply: %s", result.Kind())
	}

	if !c.Markdown {
		fmt.Fprintln(deps.Stdout, ok.Markup)
		return nil
	}
	if ok.Markup == "" {
		return readweb.Errorf(readweb.ENOTREADABLE, "preset selected no content")
	}
	md, err := deps.Converter.Convert(ok.Markup)
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, md)
	return nil
}

// readDocument reads and normalizes the page at path.
func readDocument(deps *Dependencies, path, baseURL string) (readweb.Document, error) {
	markup, err := readInput(deps, path)
	if err != nil {
		return nil, err
	}
	return deps.Normalizer.Normalize(markup, baseURL)
}

// readInput reads a file, or stdin when path is "-".
func readInput(deps *Dependencies, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" || path == "" {
		data, err = io.ReadAll(deps.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if os.IsNotExist(err) {
		return "", readweb.Errorf(readweb.ENOTFOUND, "file %q not found", path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readPreset strictly decodes the preset file at path.
func readPreset(deps *Dependencies, path string) (*readweb.Preset, error) {
	data, err := readInput(deps, path)
	if err != nil {
		return nil, err
	}
	preset, err := readweb.ParsePresetBytes([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return preset, nil
}
