package cmd

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "page commands",
}

func init() {
	pageCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	pageCmd.AddCommand(uploadPageCmd())
	pageCmd.AddCommand(getPageCmd())
	pageCmd.AddCommand(listPagesCmd())
}

func uploadPageCmd() *cobra.Command {
	var name, author, content, image, date string

	var required = []string{"name", "author", "content"}

	command := &cobra.Command{
		Use:     "upload",
		Short:   "upload a page",
		Example: "wiki page upload -n <page> -a <author> -c <content> -i <image-url>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			withContext(func(cmd *cobra.Command, app *appContext) error {
				page, err := app.pages.UploadPage(cmd.Context(), name, author, content, image, date)
				if err != nil {
					return err
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.SetHeader([]string{"Name", "Author", "Date"})
				table.Append([]string{page.Name, page.Author, page.Date})
				table.Render()
				return nil
			})(cmd, args)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "page name")
	command.Flags().StringVarP(&author, "author", "a", "", "page author")
	command.Flags().StringVarP(&content, "content", "c", "", "page content")
	command.Flags().StringVarP(&image, "image", "i", "", "image url")
	command.Flags().StringVar(&date, "date", today(), "upload date")

	return command
}

func getPageCmd() *cobra.Command {
	var name string

	var required = []string{"name"}

	command := &cobra.Command{
		Use:   "get",
		Short: "get a page with its edits",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			withContext(func(cmd *cobra.Command, app *appContext) error {
				page, err := app.pages.GetPage(cmd.Context(), name)
				if err != nil {
					return err
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.SetHeader([]string{"Name", "Author", "Date", "Image", "Edits"})
				table.Append([]string{page.Name, page.Author, page.Date, page.Image, strconv.Itoa(len(page.Edits))})
				table.Render()

				cmd.Println(page.Content)

				if len(page.Edits) > 0 {
					renderEdits(page.Edits)
				}
				return nil
			})(cmd, args)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "page name")

	return command
}

func listPagesCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "list",
		Short: "list page names",
		Run: withContext(func(cmd *cobra.Command, app *appContext) error {
			names, err := app.pages.ListPageNames(cmd.Context())
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Name"})
			for _, name := range names {
				table.Append([]string{name})
			}
			table.Render()
			return nil
		}),
	}

	return command
}
