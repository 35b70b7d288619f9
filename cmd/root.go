package cmd

import (
	"os"

	"github.com/emrgen/wiki/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wiki",
	Short: "wiki page and edit review tool",
	Example: `wiki page upload -n <page> -a <author> -c <content>
wiki page get -n <page>
wiki edit submit -n <page> -u <editor> -c <content>
wiki edit accept -n <page> -u <author>
wiki edit decline -n <page> -u <author>
wiki edit list -u <editor>
wiki edit review -u <author>
wiki user signup -u <username> -p <password>
wiki jobs run`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(config.LoadConfig().LogLevel)
		if err != nil {
			logrus.Warnf("invalid log level, using info: %v", err)
			level = logrus.InfoLevel
		}
		logrus.SetLevel(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
