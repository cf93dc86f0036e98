// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func credsFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "creds",
		Aliases:  []string{"c"},
		Usage:    "Path to the OAuth credentials file written by `ytsp auth`",
		Required: required,
	}
}

func rulesFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "smart-playlists",
		Aliases:  []string{"p"},
		Usage:    "Path to the smart playlist rules JSON",
		Required: required,
	}
}

func uploadsCacheFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "uploads-cache",
		Usage: "Path to the channel to uploads playlist cache (default from config)",
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}
}

// runCommand starts the sweep loop
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Sweep subscriptions into smart playlists every interval until interrupted",
		Flags: []cli.Flag{
			credsFlag(true),
			rulesFlag(true),
			uploadsCacheFlag(),
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Delay between the end of one sweep and the start of the next (default from config)",
			},
			&cli.BoolFlag{
				Name:  "once",
				Usage: "Run a single sweep and exit",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not record additions in the history database",
			},
		},
		Action: r.Run,
	}
}

// authCommand runs the OAuth flow
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authorize access to your YouTube account and write the credentials file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "client-secrets",
				Usage: "Path to the OAuth client secrets JSON downloaded from Google Cloud (default from config)",
			},
			&cli.StringFlag{
				Name:    "creds",
				Aliases: []string{"c", "token"},
				Usage:   "Where to write the credentials file (default from config)",
			},
			&cli.BoolFlag{
				Name:  "no-browser",
				Usage: "Print the authorization URL instead of opening a browser",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "How long to wait for the browser callback",
				Value: authTimeout,
			},
		},
		Action: r.Auth,
	}
}

// rulesCommand inspects the smart playlist rules file
func rulesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "Inspect smart playlist rules",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List rules with their playlist and channels",
				Flags:  []cli.Flag{rulesFlag(false), jsonFlag()},
				Action: r.RulesList,
			},
			{
				Name:   "validate",
				Usage:  "Check that the rules file is well formed",
				Flags:  []cli.Flag{rulesFlag(false)},
				Action: r.RulesValidate,
			},
		},
	}
}

// subscriptionsCommand lists subscribed channels
func subscriptionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "subscriptions",
		Aliases: []string{"subs"},
		Usage:   "List the channel IDs you are subscribed to",
		Flags:   []cli.Flag{credsFlag(false), jsonFlag()},
		Action:  r.Subscriptions,
	}
}

// todayCommand lists today's uploads
func todayCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "today",
		Usage: "List videos published today by a channel, or by every subscription",
		Flags: []cli.Flag{
			credsFlag(false),
			uploadsCacheFlag(),
			&cli.StringFlag{
				Name:  "channel",
				Usage: "Channel ID (omit to scan every subscription)",
			},
			jsonFlag(),
		},
		Action: r.Today,
	}
}

// cacheCommand inspects the uploads playlist cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the uploads playlist cache",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List cached channel to uploads playlist mappings",
				Flags:  []cli.Flag{uploadsCacheFlag(), jsonFlag()},
				Action: r.CacheList,
			},
		},
	}
}

// historyCommand shows recorded additions
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show videos previously added to smart playlists",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of additions to show (0 for all)",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "sweep",
				Usage: "Only show additions from this sweep ID",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format: json, csv, markdown, txt",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the export to this file instead of stdout",
			},
			jsonFlag(),
		},
		Action: r.History,
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the history database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a config.toml template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Where to write the template (default: --config)",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
