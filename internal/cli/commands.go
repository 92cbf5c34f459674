package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

func addCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new item (title can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			todo, ok := s.Add(strings.Join(args, " "))
			if !ok {
				return usageError("add: empty title")
			}
			ui.OK(a.stdout, "added "+ui.C(ui.Current().Muted, todo.ID))
			return nil
		},
	}
}

func listCmd(a *app) *cobra.Command {
	var (
		filterName string
		group      bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filterName)
			if err != nil {
				return usageError("ls: %v", err)
			}
			s, err := a.store()
			if err != nil {
				return err
			}
			ui.Panel(a.stdout, listLines(s, f, group))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filterName, "filter", "f", "all", "show all, active or completed items")
	cmd.Flags().BoolVarP(&group, "group", "g", false, "group output by pending/done")
	return cmd
}

func toggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done <index|id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle done for an item (1-based index from `ls`, or its id)",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			todo, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			s.Toggle(todo.ID)
			if todo.Completed {
				ui.OK(a.stdout, "marked active: "+todo.Title)
			} else {
				ui.OK(a.stdout, "marked done: "+todo.Title)
			}
			return nil
		},
	}
}

func removeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index|id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove an item",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			todo, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			s.Remove(todo.ID)
			ui.OK(a.stdout, "removed: "+todo.Title)
			return nil
		},
	}
}

func editCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index|id> <title...>",
		Short: "Change an item's title (an empty title removes the item)",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			todo, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")
			s.Edit(todo.ID, title)
			if _, still := s.Get(todo.ID); !still {
				ui.OK(a.stdout, "removed: "+todo.Title)
				return nil
			}
			ui.OK(a.stdout, "edited: "+strings.TrimSpace(title))
			return nil
		},
	}
}

func clearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every completed item",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			before := s.Len()
			s.ClearCompleted()
			ui.OK(a.stdout, fmt.Sprintf("cleared %d completed", before-s.Len()))
			return nil
		},
	}
}

func countCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print how many items are left to do",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%d left\n", s.Remaining())
			return nil
		},
	}
}

func uiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			l, closeLog := a.tuiLogger()
			defer closeLog()
			s.SetLogger(l)
			defer s.SetLogger(a.log)
			if err := tui.Run(s); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}

// resolve finds a todo by exact id, else by 1-based position in the full list.
func resolve(s *store.Store, ref string) (model.Todo, error) {
	if todo, ok := s.Get(ref); ok {
		return todo, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		todos := s.Todos()
		if n < 1 || n > len(todos) {
			return model.Todo{}, &exitErr{
				code: exitUsage,
				err:  fmt.Errorf("index out of range: have %d, got %d", len(todos), n),
				hint: "Hint: run `todo ls` to see valid indexes",
			}
		}
		return todos[n-1], nil
	}
	return model.Todo{}, &exitErr{
		code: exitUsage,
		err:  fmt.Errorf("no item with id %q", ref),
		hint: "Hint: run `todo ls` to see ids",
	}
}
