package main

import (
	"fmt"

	"github.com/fwojciec/readweb"
)

// Run executes the presets list command.
func (c *PresetsListCmd) Run(deps *Dependencies) error {
	filter := readweb.PresetFilter{}
	if c.Site != "" {
		filter.SitePattern = &c.Site
	}

	presets, err := deps.Presets.FindPresets(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(presets) == 0 {
		fmt.Fprintln(deps.Stdout, "No presets found. Use 'readweb presets add' or 'readweb suggest --save' to create one.")
		return nil
	}

	for _, p := range presets {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", p.ID, p.SitePattern, p.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// Run executes the presets add command.
func (c *PresetsAddCmd) Run(deps *Dependencies) error {
	preset, err := readPreset(deps, c.Preset)
	if err != nil {
		return err
	}

	sp := &readweb.StoredPreset{SitePattern: c.SitePattern, Preset: *preset}
	if err := deps.Presets.CreatePreset(deps.Ctx, sp); err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, sp.ID)
	return nil
}

// Run executes the presets delete command.
func (c *PresetsDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Presets.DeletePreset(deps.Ctx, c.ID); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted preset %s\n", c.ID)
	return nil
}
