// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/tagx/internal/formatter"
	"github.com/urfave/cli/v3"
)

func pathArg() cli.Argument {
	return &cli.StringArg{Name: "path", UsageText: "an .mp3 file or a directory of them"}
}

func backupFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "backup",
		Usage: "Copy each file before writing it (suffix from editor.backup_suffix)",
	}
}

func workersFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "workers",
		Aliases: []string{"w"},
		Usage:   "Files written concurrently (default from editor.workers, max 10)",
	}
}

func dryRunFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "dry-run",
		Usage: "Apply values and report, without writing files",
	}
}

// tagsCommand lists the tag catalog
func tagsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tags",
		Usage:  "List the tags that can be edited and the kind of value each takes",
		Action: r.Tags,
	}
}

// showCommand prints the tags of files
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Aliases:   []string{"ls"},
		Usage:     "Print the tags of each file",
		Arguments: []cli.Argument{pathArg()},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Dump decoded values, including attachments",
			},
		},
		Action: r.Show,
	}
}

// editCommand writes a single tag on every file
func editCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Set one tag on every file; prompts for the tag and value when not given",
		Arguments: []cli.Argument{pathArg()},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "tag",
				Aliases: []string{"t"},
				Usage:   "Tag name, e.g. \"album artist\" or TrackNumber",
			},
			&cli.StringFlag{
				Name:  "value",
				Usage: "Value to write; lists are comma separated",
			},
			&cli.BoolFlag{
				Name:    "append",
				Aliases: []string{"a"},
				Usage:   "Add items to a list tag instead of replacing it",
			},
			backupFlag(),
			workersFlag(),
			dryRunFlag(),
		},
		Action: r.Edit,
	}
}

// importCommand writes a table of values, one row per file
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Write tags from a CSV, XML or YAML file, one row per file in name order",
		Arguments: []cli.Argument{pathArg()},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Aliases:  []string{"s"},
				Usage:    "Import file (.csv, .xml, .yaml)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "skip-empty",
				Usage: "Leave tags untouched for empty cells (default from import.skip_empty)",
			},
			backupFlag(),
			workersFlag(),
			dryRunFlag(),
		},
		Action: r.Import,
	}
}

// exportCommand writes the tags of files in an importable layout
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export the tags of each file",
		Arguments: []cli.Argument{pathArg()},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv, markdown or txt",
				Value:   string(formatter.FormatCSV),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
		},
		Action: r.Export,
	}
}

// historyCommand lists recorded edits
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded edits, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Only edits to this file",
			},
			&cli.StringFlag{
				Name:  "session",
				Usage: "Only edits from this session ID",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of edits to show (0 for all)",
				Value:   20,
			},
		},
		Action: r.History,
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config file with the default settings",
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the history database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive editing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "tui",
		Aliases:   []string{"interactive", "ui"},
		Usage:     "Launch the interactive tag editor",
		Arguments: []cli.Argument{pathArg()},
		Flags:     []cli.Flag{backupFlag(), workersFlag()},
		Action:    r.TUI,
	}
}
