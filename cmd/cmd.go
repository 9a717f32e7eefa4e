// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles database and configuration initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize config file, database and migrations",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.Setup,
	}
}

// serveCommand runs the HTTP API server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the library API server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to bind (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// libraryCommand handles stored playlist and song operations.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Browse and export the stored library",
		Commands: []*cli.Command{
			{
				Name:  "playlists",
				Usage: "List playlists",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.LibraryPlaylists,
			},
			{
				Name:  "songs",
				Usage: "List songs for a view (home, liked, or playlist)",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "mode",
						Usage: "View mode: home, liked, or playlist",
						Value: "home",
					},
					&cli.IntFlag{
						Name:  "playlist-id",
						Usage: "Playlist ID (with --mode playlist)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.LibrarySongs,
			},
			{
				Name:  "export",
				Usage: "Export a playlist to csv, markdown, or text",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:     "id",
						Usage:    "Playlist ID to export",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: csv, markdown, or text",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file or directory path",
					},
				},
				Action: r.LibraryExport,
			},
		},
	}
}

// lookupCommand handles provider search and stream resolution.
func lookupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "Query streaming providers",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search providers for songs",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.LookupSearch,
			},
			{
				Name:  "resolve",
				Usage: "Resolve a track id to a playable stream URL",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "track",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LookupResolve,
			},
		},
	}
}

// providersCommand reports configured provider health.
func providersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "providers",
		Usage: "Streaming provider operations",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Probe every configured provider",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ProvidersStatus,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive library browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"tui", "ui"},
		Usage:   "Launch interactive TUI for library browsing",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.TUI,
	}
}
