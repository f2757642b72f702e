// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/snapup/internal/formatter"
	"github.com/urfave/cli/v3"
)

// signupCommand submits the signup form from flags
func signupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "Create an account on the backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Display name",
			},
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Email address",
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Password",
				Sources: cli.EnvVars("SNAPUP_PASSWORD"),
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Signup,
	}
}

// uploadCommand sends one or more local images through the upload form
func uploadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Upload one or more images",
		ArgsUsage: "<file> [file...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open each uploaded image in the browser",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the last uploaded image URL to the clipboard",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.StringFlag{
				Name:    "report",
				Aliases: []string{"o"},
				Usage:   "Write a report of the batch to this file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format (" + strings.Join(formatNames(), ", ") + ")",
				Value:   string(formatter.Text),
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Uploads per second (defaults to upload.rate_per_second)",
			},
		},
		Action: r.Upload,
	}
}

// imagesCommand lists images recorded by the backend
func imagesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "images",
		Usage: "List uploaded images",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Images,
	}
}

// fetchCommand downloads a stored image
func fetchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Download a stored image",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "stored",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (defaults to the stored filename)",
			},
		},
		Action: r.Fetch,
	}
}

// apiCommand handles direct backend calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write config.toml from the built-in template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "print",
						Usage: "Print the template instead of writing it",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: r.ConfigShow,
			},
		},
	}
}

// baseURLCommand prints the backend base URL derived from the host setting
func baseURLCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "base-url",
		Usage:  "Print the backend base URL",
		Action: r.BaseURL,
	}
}

// setupCommand handles first-run setup
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the development backend's database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
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

// serveCommand runs the development backend and the form pages
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the development backend and web forms",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Backend port (defaults to server.port)",
			},
			&cli.IntFlag{
				Name:  "web-port",
				Usage: "Form pages port (defaults to web.port)",
			},
			&cli.BoolFlag{
				Name:  "no-web",
				Usage: "Run only the backend",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand launches the interactive forms
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch interactive terminal forms",
		Action: r.TUI,
	}
}

func formatNames() []string {
	names := make([]string, 0, len(formatter.Formats))
	for _, f := range formatter.Formats {
		names = append(names, string(f))
	}
	return names
}
