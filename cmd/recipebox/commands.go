package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipebox/internal/controller"
	"github.com/hammamikhairi/recipebox/internal/conversation"
	"github.com/hammamikhairi/recipebox/internal/display"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/recipe"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal client (default)",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

var listCmd = &cobra.Command{
	Use:   "list [term]",
	Short: "Print the recipe list, optionally filtered by a search term",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		ctl := a.controller()
		ctl.Settle(ctx, ctl.Init(ctx))
		if len(args) == 1 {
			ctl.Search(args[0])
		}

		l := ctl.Screen().List
		if l.Message != "" {
			return errors.New(l.Message)
		}
		fmt.Fprintln(cmd.OutOrStdout(), display.RenderList(l))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the details of a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid recipe id %q", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		ctl := a.controller()
		ctl.Settle(ctx, ctl.Init(ctx))

		s := ctl.Screen()
		if s.List.Message != "" {
			return errors.New(s.List.Message)
		}
		if !ctl.ViewDetails(id) {
			return fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
		}
		fmt.Fprintln(cmd.OutOrStdout(), display.RenderDetail(ctl.Screen().Detail, display.StyleAuto, 0))
		return nil
	},
}

var addFields recipe.Fields

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Submit a new recipe",
	Long: `Submit a new recipe to the Recipe Service.

Ingredients are comma-separated. Steps are newline-separated, for example
--steps $'Chop the onion\nSimmer the tomatoes'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		notifier := conversation.NewCLINotifier(a.log.Named("notify"), cmd.ErrOrStderr())
		ctl := a.controller(controller.WithNotifier(notifier))

		ctl.ShowAddForm()
		ctl.Settle(ctx, ctl.Submit(ctx, addFields))

		s := ctl.Screen()
		if s.Notice != "" {
			return errors.New("recipe not added")
		}

		msg := fmt.Sprintf("Recipe %q added.", addFields.Title)
		if s.List.Message == "" {
			msg = fmt.Sprintf("Recipe %q added (%d recipes in catalog).", addFields.Title, a.store.Len())
		}
		return notifier.Notify(ctx, msg)
	},
}

func init() {
	addCmd.Flags().StringVar(&addFields.Title, "title", "", "Recipe title (required)")
	addCmd.Flags().StringVar(&addFields.Description, "description", "", "Short description (required)")
	addCmd.Flags().StringVar(&addFields.Ingredients, "ingredients", "", "Comma-separated ingredients (required)")
	addCmd.Flags().StringVar(&addFields.Steps, "steps", "", "Newline-separated steps (required)")

	rootCmd.AddCommand(tuiCmd, listCmd, showCmd, addCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	ui := display.NewUI(a.controller(), conversation.NewKeywordParser(a.log.Named("parser")), a.log.Named("ui"))
	if err := ui.Run(ctx); err != nil && ctx.Err() == nil {
		a.log.Error("display: %v", err)
		return err
	}
	a.log.Info("recipebox stopped")
	return nil
}
