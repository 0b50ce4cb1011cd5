package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/samber/do"
	"github.com/spf13/cobra"

	"projdesk/config"
	"projdesk/engine"
	"projdesk/models"
)

func newRootCmd(inj *do.Injector) *cobra.Command {
	root := &cobra.Command{
		Use:           "projdesk",
		Short:         "Local project manager backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(inj),
		newLinkCmd(inj),
		newAttachmentCmd(inj),
		newJournalCmd(inj),
		newTodoCmd(inj),
		newOpenCmd(inj),
		newConfigCmd(inj),
		newStatsCmd(inj),
		newBackupCmd(inj),
		newSyncCmd(inj),
		newGitCmd(inj),
		newDetectCmd(inj),
	)
	return root
}

func getEngine(inj *do.Injector) (*engine.Engine, error) {
	return do.Invoke[*engine.Engine](inj)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newProjectCmd(inj *do.Injector) *cobra.Command {
	cmd := &cobra.Command{Use: "project", Short: "Manage projects"}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <json>",
		Short: "Create a project from a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var in models.CreateProjectInput
			if err := json.Unmarshal([]byte(args[0]), &in); err != nil {
				return fmt.Errorf("invalid project document: %w", err)
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			project, err := eng.CreateProject(in)
			if err != nil {
				return err
			}
			return printJSON(c, project)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one project with its links",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			project, err := eng.GetProject(id)
			if err != nil {
				return err
			}
			return printJSON(c, project)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all projects, pinned first",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			projects, err := eng.ListProjects()
			if err != nil {
				return err
			}
			return printJSON(c, projects)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search projects by name, description, path or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			projects, err := eng.SearchProjects(args[0])
			if err != nil {
				return err
			}
			return printJSON(c, projects)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <id> <json>",
		Short: "Apply a sparse update; omitted fields stay unchanged",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var in models.UpdateProjectInput
			if err := json.Unmarshal([]byte(args[1]), &in); err != nil {
				return fmt.Errorf("invalid update document: %w", err)
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			project, err := eng.UpdateProject(id, in)
			if err != nil {
				return err
			}
			return printJSON(c, project)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and everything attached to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.DeleteProject(id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set a project's lifecycle status",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.UpdateProjectStatus(id, args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pin <id>",
		Short: "Toggle a project's pinned state",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			pinned, err := eng.TogglePin(id)
			if err != nil {
				return err
			}
			return printJSON(c, map[string]bool{"pinned": pinned})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <id>...",
		Short: "Reorder pinned projects to the given sequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ids := make([]int64, len(args))
			for i, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids[i] = id
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.ReorderPinned(ids)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "track-open <id>",
		Short: "Record that a project was opened",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.TrackProjectOpen(id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add-time <id> <seconds>",
		Short: "Accumulate worked time on a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			seconds, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seconds %q", args[1])
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.AddProjectTime(id, seconds)
		},
	})

	return cmd
}

func newLinkCmd(inj *do.Injector) *cobra.Command {
	cmd := &cobra.Command{Use: "link", Short: "Manage project links"}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <json>",
		Short: "Attach a link to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var in models.CreateLinkInput
			if err := json.Unmarshal([]byte(args[0]), &in); err != nil {
				return fmt.Errorf("invalid link document: %w", err)
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			link, err := eng.CreateLink(in)
			if err != nil {
				return err
			}
			return printJSON(c, link)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's links",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			links, err := eng.GetLinks(id)
			if err != nil {
				return err
			}
			return printJSON(c, links)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <id> <json>",
		Short: "Apply a sparse update to a link",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var in models.UpdateLinkInput
			if err := json.Unmarshal([]byte(args[1]), &in); err != nil {
				return fmt.Errorf("invalid update document: %w", err)
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			link, err := eng.UpdateLink(id, in)
			if err != nil {
				return err
			}
			return printJSON(c, link)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.DeleteLink(id)
		},
	})

	return cmd
}

func newAttachmentCmd(inj *do.Injector) *cobra.Command {
	cmd := &cobra.Command{Use: "attachment", Short: "Manage project attachments"}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <json>",
		Short: "Attach a base64-encoded file to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var in models.CreateAttachmentInput
			if err := json.Unmarshal([]byte(args[0]), &in); err != nil {
				return fmt.Errorf("invalid attachment document: %w", err)
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			attachment, err := eng.AddAttachment(in)
			if err != nil {
				return err
			}
			return printJSON(c, attachment)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			attachments, err := eng.GetAttachments(id)
			if err != nil {
				return err
			}
			return printJSON(c, attachments)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an attachment",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.DeleteAttachment(id)
		},
	})

	return cmd
}

func newJournalCmd(inj *do.Injector) *cobra.Command {
	cmd := &cobra.Command{Use: "journal", Short: "Manage project journal entries"}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <json>",
		Short: "Add a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var in models.CreateJournalEntryInput
			if err := json.Unmarshal([]byte(args[0]), &in); err != nil {
				return fmt.Errorf("invalid journal document: %w", err)
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			entry, err := eng.CreateJournalEntry(in)
			if err != nil {
				return err
			}
			return printJSON(c, entry)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's journal entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			entries, err := eng.GetJournalEntries(id)
			if err != nil {
				return err
			}
			return printJSON(c, entries)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <id> <json>",
		Short: "Apply a sparse update to a journal entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var in models.UpdateJournalEntryInput
			if err := json.Unmarshal([]byte(args[1]), &in); err != nil {
				return fmt.Errorf("invalid update document: %w", err)
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			entry, err := eng.UpdateJournalEntry(id, in)
			if err != nil {
				return err
			}
			return printJSON(c, entry)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.DeleteJournalEntry(id)
		},
	})

	return cmd
}

func newTodoCmd(inj *do.Injector) *cobra.Command {
	cmd := &cobra.Command{Use: "todo", Short: "Manage project todos"}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <project-id> <content>",
		Short: "Add a todo to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			todo, err := eng.CreateTodo(models.CreateTodoInput{ProjectID: id, Content: args[1]})
			if err != nil {
				return err
			}
			return printJSON(c, todo)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's todos, pending first",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			todos, err := eng.GetTodos(id)
			if err != nil {
				return err
			}
			return printJSON(c, todos)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "update <id> <json>",
		Short: "Apply a sparse update to a todo",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var in models.UpdateTodoInput
			if err := json.Unmarshal([]byte(args[1]), &in); err != nil {
				return fmt.Errorf("invalid update document: %w", err)
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			todo, err := eng.UpdateTodo(id, in)
			if err != nil {
				return err
			}
			return printJSON(c, todo)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.DeleteTodo(id)
		},
	})

	return cmd
}

func newOpenCmd(inj *do.Injector) *cobra.Command {
	cmd := &cobra.Command{Use: "open", Short: "Launch desktop programs"}

	cmd.AddCommand(&cobra.Command{
		Use:   "terminal <path>",
		Short: "Open a terminal in the given directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.OpenTerminal(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "url <url>",
		Short: "Open a URL in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.OpenURL(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "file-manager <path>",
		Short: "Open the file manager at the given directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.OpenFileManager(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "editor <path>",
		Short: "Open the text editor on the given path",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.OpenTextEditor(args[0])
		},
	})

	return cmd
}

func newConfigCmd(inj *do.Injector) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Manage configuration"}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return printJSON(c, eng.GetConfig())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <json>",
		Short: "Replace the whole configuration document",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var cfg config.AppConfig
			if err := json.Unmarshal([]byte(args[0]), &cfg); err != nil {
				return fmt.Errorf("invalid configuration document: %w", err)
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return eng.UpdateConfig(cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the OS defaults",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			cfg, err := eng.ResetConfig()
			if err != nil {
				return err
			}
			return printJSON(c, cfg)
		},
	})

	return cmd
}

func newStatsCmd(inj *do.Injector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show global project statistics",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			stats, err := eng.GetProjectStats()
			if err != nil {
				return err
			}
			return printJSON(c, stats)
		},
	}

	var limit int
	activity := &cobra.Command{
		Use:   "activity <project-id>",
		Short: "Show a project's recent activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			activities, err := eng.GetProjectActivities(id, limit)
			if err != nil {
				return err
			}
			return printJSON(c, activities)
		},
	}
	activity.Flags().IntVar(&limit, "limit", 20, "maximum rows to return")
	cmd.AddCommand(activity)

	return cmd
}

func newBackupCmd(inj *do.Injector) *cobra.Command {
	cmd := &cobra.Command{Use: "backup", Short: "Generate backup documents"}

	var write bool
	create := &cobra.Command{
		Use:   "create <project-id>",
		Short: "Generate a markdown backup of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			data, err := eng.CreateProjectBackup(id)
			if err != nil {
				return err
			}
			if write {
				if err := eng.WriteFileToPath(data.Path, data.Content); err != nil {
					return err
				}
			}
			return printJSON(c, data)
		},
	}
	create.Flags().BoolVar(&write, "write", false, "also write the document to the suggested path")
	cmd.AddCommand(create)

	return cmd
}

func newSyncCmd(inj *do.Injector) *cobra.Command {
	cmd := &cobra.Command{Use: "sync", Short: "Mirror project directories with rsync"}

	cmd.AddCommand(&cobra.Command{
		Use:   "backup <project-id>",
		Short: "Mirror a project into the configured backup location",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			result, err := eng.SyncProjectToBackup(id)
			if err != nil {
				return err
			}
			c.Println(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dir <source> <destination>",
		Short: "Mirror one directory into another",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			result, err := eng.SyncProject(args[0], args[1])
			if err != nil {
				return err
			}
			c.Println(result)
			return nil
		},
	})

	return cmd
}

func newGitCmd(inj *do.Injector) *cobra.Command {
	cmd := &cobra.Command{Use: "git", Short: "Inspect a project's git repository"}

	cmd.AddCommand(&cobra.Command{
		Use:   "branch <path>",
		Short: "Show the current branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			branch, err := eng.GetGitBranch(args[0])
			if err != nil {
				return err
			}
			c.Println(branch)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status <path>",
		Short: "Show the worktree status",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			status, err := eng.GetGitStatus(args[0])
			if err != nil {
				return err
			}
			c.Print(status)
			return nil
		},
	})

	var limit int
	logCmd := &cobra.Command{
		Use:   "log <path>",
		Short: "Show recent commits",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			commits, err := eng.GetRecentCommits(args[0], limit)
			if err != nil {
				return err
			}
			return printJSON(c, commits)
		},
	}
	logCmd.Flags().IntVar(&limit, "limit", 10, "maximum commits to return")
	cmd.AddCommand(logCmd)

	return cmd
}

func newDetectCmd(inj *do.Injector) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Detect installed terminals, browsers, file managers and editors",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			eng, err := getEngine(inj)
			if err != nil {
				return err
			}
			return printJSON(c, eng.DetectPrograms())
		},
	}
}
