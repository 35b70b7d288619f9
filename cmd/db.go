package cmd

import (
	"github.com/emrgen/wiki/internal/config"
	"github.com/emrgen/wiki/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(Migrate())
}

func Migrate() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the blob table of the gorm backend",
		Run: func(cmd *cobra.Command, args []string) {
			db, err := config.GetDb(config.LoadConfig())
			if err != nil {
				logrus.Error(err)
				return
			}

			if err := model.Migrate(db); err != nil {
				panic(err)
			}
			logrus.Info("database migrated")
		},
	}

	return command
}
