package cmd

import (
	"os"

	"github.com/emrgen/wiki/internal/filter"
	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/service"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "edit commands",
}

func init() {
	editCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	editCmd.AddCommand(submitEditCmd())
	editCmd.AddCommand(decideEditCmd("accept", service.ActionAccept))
	editCmd.AddCommand(decideEditCmd("decline", service.ActionDecline))
	editCmd.AddCommand(listEditsCmd())
	editCmd.AddCommand(reviewEditsCmd())
	editCmd.AddCommand(pendingEditsCmd())
}

var statusColors = map[string]color.Attribute{
	"grey":  color.FgHiBlack,
	"green": color.FgGreen,
	"red":   color.FgRed,
}

func statusText(status model.EditStatus) string {
	return color.New(statusColors[filter.StatusColor(status)]).Sprint(filter.StatusName(status))
}

func renderEdits(edits []model.Edit) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Editor", "Date", "Status", "Content"})
	for _, edit := range edits {
		table.Append([]string{edit.Editor, edit.Date, statusText(edit.Status), edit.Content})
	}
	table.Render()
}

func submitEditCmd() *cobra.Command {
	var name, editor, content, date string

	var required = []string{"name", "user", "content"}

	command := &cobra.Command{
		Use:     "submit",
		Short:   "propose new content for a page",
		Example: "wiki edit submit -n <page> -u <editor> -c <content>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			withContext(func(cmd *cobra.Command, app *appContext) error {
				if err := app.edits.SubmitEdit(cmd.Context(), name, editor, content, date); err != nil {
					return err
				}

				color.Green("edit submitted to %s, waiting for the author\n", name)
				return nil
			})(cmd, args)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "page name")
	command.Flags().StringVarP(&editor, "user", "u", "", "editor username")
	command.Flags().StringVarP(&content, "content", "c", "", "proposed content")
	command.Flags().StringVar(&date, "date", today(), "edit date")

	return command
}

func decideEditCmd(use, action string) *cobra.Command {
	var name, reviewer string

	var required = []string{"name", "user"}

	command := &cobra.Command{
		Use:   use,
		Short: use + " the pending edit of a page",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			withContext(func(cmd *cobra.Command, app *appContext) error {
				if err := app.edits.Decide(cmd.Context(), name, reviewer, action); err != nil {
					return err
				}

				page, err := app.pages.GetPage(cmd.Context(), name)
				if err != nil {
					return err
				}

				last, _ := page.LastEdit()
				cmd.Printf("%s: %s\n", name, statusText(last.Status))
				return nil
			})(cmd, args)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "page name")
	command.Flags().StringVarP(&reviewer, "user", "u", "", "page author")

	return command
}

func listEditsCmd() *cobra.Command {
	var username string

	var required = []string{"user"}

	command := &cobra.Command{
		Use:   "list",
		Short: "list the edits submitted by a user",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			withContext(func(cmd *cobra.Command, app *appContext) error {
				views, err := app.edits.GetEditsBy(cmd.Context(), username)
				if err != nil {
					return err
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.SetHeader([]string{"Page", "Author", "Date", "Status", "Content"})
				for _, view := range views {
					table.Append([]string{view.PageName, view.PageAuthor, view.EditDate, statusText(view.Status), view.EditContent})
				}
				table.Render()
				return nil
			})(cmd, args)
		},
	}

	command.Flags().StringVarP(&username, "user", "u", "", "editor username")

	return command
}

func reviewEditsCmd() *cobra.Command {
	var username string

	var required = []string{"user"}

	command := &cobra.Command{
		Use:   "review",
		Short: "list the edited pages written by a user",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			withContext(func(cmd *cobra.Command, app *appContext) error {
				pages, err := app.edits.GetPagesAuthoredWithEdits(cmd.Context(), username)
				if err != nil {
					return err
				}

				for _, page := range pages {
					color.Cyan("%s\n", page.Name)
					renderEdits(page.Edits)
				}
				return nil
			})(cmd, args)
		},
	}

	command.Flags().StringVarP(&username, "user", "u", "", "page author")

	return command
}

func pendingEditsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "pending",
		Short: "list the pages with an edit awaiting review",
		Run: withContext(func(cmd *cobra.Command, app *appContext) error {
			pages, err := app.edits.ListPendingReviews(cmd.Context())
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Page", "Author", "Editor", "Date"})
			for _, page := range pages {
				last, _ := page.LastEdit()
				table.Append([]string{page.Name, page.Author, last.Editor, last.Date})
			}
			table.Render()
			return nil
		}),
	}

	return command
}
