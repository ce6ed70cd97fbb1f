// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// loginCommand signs a member in with their email or username.
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in with email (or username) and password",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "login",
			},
			&cli.StringArg{
				Name: "password",
			},
		},
		Action: r.Login,
	}
}

func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Sign out of the current session",
		Action: r.Logout,
	}
}

func whoamiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the signed-in member",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Whoami,
	}
}

// openCommand consumes a pasted share link or bare code.
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "Open a share link or code (invite, playlist, or both)",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "link",
			},
		},
		Action: r.Open,
	}
}

// songsCommand handles catalog operations
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "Manage the song catalog",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a song suggestion (admin)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Aliases:  []string{"u"},
						Usage:    "YouTube URL of the song",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "title",
						Aliases: []string{"t"},
						Usage:   "Song title (looked up from the URL when omitted)",
					},
					&cli.StringFlag{
						Name:    "artist",
						Aliases: []string{"a"},
						Usage:   "Artist name",
					},
					&cli.BoolFlag{
						Name:  "private",
						Usage: "Hide the song from members until it is made public",
					},
				},
				Action: r.SongsAdd,
			},
			{
				Name:  "list",
				Usage: "List songs visible to the signed-in member",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SongsList,
			},
			{
				Name:  "remove",
				Usage: "Remove a song (admin)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.SongsRemove,
			},
			{
				Name:  "visibility",
				Usage: "Toggle a song between public and private (admin)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.SongsVisibility,
			},
		},
	}
}

func voteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "vote",
		Usage: "Rate a song from 1 to 5 stars",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
			&cli.StringArg{
				Name: "score",
			},
		},
		Action: r.Vote,
	}
}

// shareCommand renders tokens for other devices to consume
func shareCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "share",
		Usage: "Create share links and sync codes (admin)",
		Commands: []*cli.Command{
			{
				Name:  "playlist",
				Usage: "Link carrying the current song catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "copy",
						Usage: "Copy the link to the clipboard",
					},
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the link in the browser",
					},
				},
				Action: r.SharePlaylist,
			},
			{
				Name:  "invite",
				Usage: "Link granting a member access on their device",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "login",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "grant-only",
						Usage: "Leave the songs already on the member's device untouched",
					},
					&cli.BoolFlag{
						Name:  "copy",
						Usage: "Copy the link to the clipboard",
					},
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the link in the browser",
					},
				},
				Action: r.ShareInvite,
			},
			{
				Name:  "sync",
				Usage: "Code carrying the full roster and catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "copy",
						Usage: "Copy the code to the clipboard",
					},
				},
				Action: r.ShareSync,
			},
		},
	}
}

// requestCommand produces the join-request code a prospective member sends
// to the admin out of band.
func requestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "request",
		Usage: "Create a join-request code to send to the admin",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Display name",
			},
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Usage:    "Email address (used to sign in)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "whatsapp",
				Usage: "WhatsApp number",
			},
			&cli.StringFlag{
				Name:     "password",
				Aliases:  []string{"p"},
				Usage:    "Password for the new account",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the code to the clipboard",
			},
		},
		Action: r.Request,
	}
}

func approveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "approve",
		Usage: "Approve a join-request code and print the member's invite link (admin)",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "code",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the invite link to the clipboard",
			},
		},
		Action: r.Approve,
	}
}

// importCommand consumes bare codes produced by `share sync` and
// `share playlist` without going through a link.
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import a sync or playlist code",
		Commands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "Replace local roster and catalog with a full sync code",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "code",
					},
				},
				Action: r.ImportSync,
			},
			{
				Name:  "playlist",
				Usage: "Merge a playlist code into the local catalog",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "code",
					},
				},
				Action: r.ImportPlaylist,
			},
		},
	}
}

// membersCommand handles roster operations
func membersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "members",
		Usage: "Manage the member roster (admin)",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Register a member directly, pre-approved",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "name",
						Aliases: []string{"n"},
						Usage:   "Display name",
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Email address (used to sign in)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "whatsapp",
						Usage: "WhatsApp number",
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Password for the new account",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "admin",
						Usage: "Grant the admin role",
					},
				},
				Action: r.MembersRegister,
			},
			{
				Name:  "list",
				Usage: "List roster members",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.MembersList,
			},
			{
				Name:  "remove",
				Usage: "Remove a member by login or ID",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "member",
					},
				},
				Action: r.MembersRemove,
			},
			{
				Name:  "reset-password",
				Usage: "Set a new password for a member",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "member",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "New password",
						Required: true,
					},
				},
				Action: r.MembersResetPassword,
			},
			{
				// Changes the caller's own password, so no admin role needed.
				Name:  "passwd",
				Usage: "Change your own password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "New password",
						Required: true,
					},
				},
				Action: r.Passwd,
			},
		},
	}
}

func insightCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "insight",
		Usage:  "Ask the setlist assistant for an order suggestion",
		Action: r.Insight,
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the catalog with vote tallies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv, markdown, or text",
				Value:   "markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (stdout when omitted)",
			},
		},
		Action: r.Export,
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Interactive voting view",
		Action: r.TUI,
	}
}
