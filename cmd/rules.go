package main

import (
	"context"

	"github.com/ttufts/youtube-smart-playlists/internal/models"
	"github.com/ttufts/youtube-smart-playlists/internal/ui"
	"github.com/urfave/cli/v3"
)

func (r *Runner) rulesPath(cmd *cli.Command) string {
	if p := cmd.String("smart-playlists"); p != "" {
		return p
	}
	return r.config.Files.Rules
}

// RulesList prints every rule sorted by name.
func (r *Runner) RulesList(ctx context.Context, cmd *cli.Command) error {
	rules, err := models.LoadRules(r.rulesPath(cmd))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(rules, true)
	}
	return r.writePlain("%s", ui.RulesTable(rules.Rules()))
}

// RulesValidate loads the rules file and reports what it covers.
func (r *Runner) RulesValidate(ctx context.Context, cmd *cli.Command) error {
	path := r.rulesPath(cmd)
	rules, err := models.LoadRules(path)
	if err != nil {
		return err
	}

	return r.writePlain("%s %s: %d rules over %d channels\n",
		ui.OK("✓"), path, len(rules), len(rules.Channels()))
}
