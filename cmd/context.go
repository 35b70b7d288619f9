package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/emrgen/wiki/internal/account"
	"github.com/emrgen/wiki/internal/blob"
	"github.com/emrgen/wiki/internal/config"
	"github.com/emrgen/wiki/internal/service"
	"github.com/emrgen/wiki/internal/store"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// appContext holds the services a command works with.
type appContext struct {
	cfg      *config.Config
	blobs    blob.Store
	pages    *service.PageService
	edits    *service.EditService
	accounts *account.Service
}

func openContext() (*appContext, error) {
	cfg := config.LoadConfig()

	blobs, err := config.OpenBlobStore(cfg)
	if err != nil {
		return nil, err
	}

	codec, err := config.NewCompressor(cfg)
	if err != nil {
		_ = blobs.Close()
		return nil, err
	}

	pageStore := store.NewPageStore(blobs, codec)
	pageCache := config.NewPageCache(cfg, codec)

	return &appContext{
		cfg:      cfg,
		blobs:    blobs,
		pages:    service.NewPageService(pageStore, pageCache),
		edits:    service.NewEditService(pageStore).WithCache(pageCache),
		accounts: account.NewService(store.NewUserStore(blobs), cfg.SiteSecret),
	}, nil
}

func (a *appContext) Close() {
	if err := a.blobs.Close(); err != nil {
		logrus.Errorf("error closing blob store: %v", err)
	}
}

// withContext opens the services for the duration of run.
func withContext(run func(cmd *cobra.Command, app *appContext) error) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		app, err := openContext()
		if err != nil {
			logrus.Error(err)
			return
		}
		defer app.Close()

		if err := run(cmd, app); err != nil {
			color.Red("error: %v\n", err)
		}
	}
}

func today() string {
	return time.Now().Format(dateLayout)
}

func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	var providedFlags []string
	for _, required := range flags {
		if !cmd.Flag(required).Changed {
			missingFlags = append(missingFlags, required)
		} else {
			value := cmd.Flag(required).Value.String()
			providedFlags = append(providedFlags, fmt.Sprintf("--%s=%s", required, value))
		}
	}

	if len(missingFlags) > 0 {
		var msg string
		for _, f := range missingFlags {
			msg += fmt.Sprintf("--%s ", f)
		}

		color.Red("missing: %s\n", msg)
		if len(providedFlags) > 0 {
			provided := strings.Join(providedFlags, " ")
			color.Green("provide: %s\n", provided)
		}

		cmd.Println("")

		_ = cmd.Usage()

		return true
	}

	return false
}
