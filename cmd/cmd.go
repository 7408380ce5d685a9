// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// homeCommand fetches the home feed (trending songs and new album releases).
func homeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "home",
		Usage: "Show trending songs and new album releases",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "refresh",
				Usage: "Bypass the cached feed and refetch",
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
		Action: r.Home,
	}
}

// songCommand looks up a single song by catalog ID.
func songCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "song",
		Usage: "Show song details",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags: []cli.Flag{
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
		Action: r.SongDetails,
	}
}

// albumCommand handles album lookup and export operations.
func albumCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "album",
		Usage: "Album operations",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Show album details and track list",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
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
				Action: r.AlbumDetails,
			},
			{
				Name:  "export",
				Usage: "Export album metadata for offline use",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, markdown, txt, json)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
				},
				Action: r.AlbumExport,
			},
		},
	}
}

// searchCommand searches the catalog for songs and albums.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog for songs and albums",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results to show",
				Value: 10,
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
		Action: r.SearchCatalog,
	}
}

// downloadCommand handles song and album downloads.
func downloadCommand(r *Runner) *cli.Command {
	qualityFlag := &cli.StringFlag{
		Name:    "quality",
		Aliases: []string{"q"},
		Usage:   "Audio quality (low, medium, high, best, lossless)",
	}
	dirFlag := &cli.StringFlag{
		Name:  "dir",
		Usage: "Output directory (defaults to download.dir from config)",
	}

	return &cli.Command{
		Name:    "download",
		Aliases: []string{"dl"},
		Usage:   "Download audio from the catalog",
		Commands: []*cli.Command{
			{
				Name:  "song",
				Usage: "Download a single song",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags:  []cli.Flag{qualityFlag, dirFlag},
				Action: r.DownloadSong,
			},
			{
				Name:  "album",
				Usage: "Download every track of an album",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					qualityFlag,
					dirFlag,
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent track downloads",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Maximum download requests per second",
						Value: 2.0,
					},
				},
				Action: r.DownloadAlbum,
			},
		},
	}
}

// libraryCommand inspects recorded downloads.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Manage the local download library",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded downloads",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "quality",
						Usage: "Filter by audio quality",
					},
					&cli.StringFlag{
						Name:  "song",
						Usage: "Filter by song ID",
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
				Action: r.LibraryList,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a download record (keeps the audio file)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.LibraryRemove,
			},
		},
	}
}

// authCommand handles social sign-in operations
func authCommand(r *Runner) *cli.Command {
	providerFlag := &cli.StringFlag{
		Name:    "provider",
		Aliases: []string{"p"},
		Usage:   "Sign-in provider (google or github)",
		Value:   "google",
	}

	return &cli.Command{
		Name:  "auth",
		Usage: "Manage sign-in sessions",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Sign in with a provider using OAuth2",
				Flags:  []cli.Flag{providerFlag},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show the current sign-in session",
				Flags:  []cli.Flag{providerFlag},
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Remove the stored sign-in session",
				Flags:  []cli.Flag{providerFlag},
				Action: r.AuthLogout,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the library database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Create a config.toml from the embedded template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the library database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// apiCommand handles direct catalog API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the catalog API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Run a raw API call by __call name, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "call",
					},
				},
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "param",
						Aliases: []string{"P"},
						Usage:   "Query parameter as key=value (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing and downloads.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "quality",
				Aliases: []string{"q"},
				Usage:   "Audio quality for downloads started from the TUI",
			},
		},
		Action: r.TUI,
	}
}
