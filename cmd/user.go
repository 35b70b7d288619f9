package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "user commands",
}

func init() {
	userCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	userCmd.AddCommand(signUpCmd())
	userCmd.AddCommand(signInCmd())
}

func signUpCmd() *cobra.Command {
	var username, password string

	var required = []string{"user", "password"}

	command := &cobra.Command{
		Use:   "signup",
		Short: "register a user",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			withContext(func(cmd *cobra.Command, app *appContext) error {
				if err := app.accounts.SignUp(cmd.Context(), username, password); err != nil {
					return err
				}

				color.Green("welcome %s\n", username)
				return nil
			})(cmd, args)
		},
	}

	command.Flags().StringVarP(&username, "user", "u", "", "username")
	command.Flags().StringVarP(&password, "password", "p", "", "password")

	return command
}

func signInCmd() *cobra.Command {
	var username, password string

	var required = []string{"user", "password"}

	command := &cobra.Command{
		Use:   "signin",
		Short: "check the password of a user",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			withContext(func(cmd *cobra.Command, app *appContext) error {
				if err := app.accounts.SignIn(cmd.Context(), username, password); err != nil {
					return err
				}

				color.Green("signed in as %s\n", username)
				return nil
			})(cmd, args)
		},
	}

	command.Flags().StringVarP(&username, "user", "u", "", "username")
	command.Flags().StringVarP(&password, "password", "p", "", "password")

	return command
}
