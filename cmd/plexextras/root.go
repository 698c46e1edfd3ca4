package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"plexextras/internal/collector"
	"plexextras/internal/config"
	"plexextras/internal/logging"
	"plexextras/internal/prompt"
	"plexextras/internal/runlock"
	"plexextras/internal/services"
	"plexextras/internal/services/plex"
)

func newRootCommand() *cobra.Command {
	var (
		configFlag     string
		hostFlag       string
		tokenFlag      string
		sectionFlag    string
		collectionFlag string
		noDeleteFlag   bool
		logLevelFlag   string
		logFormatFlag  string
	)

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "plexextras",
		Short:         "Maintain a Plex collection of items that have local extras",
		Long: `plexextras scans a Plex library section for items with local extras
(behind-the-scenes clips, deleted scenes, trailers stored next to the media)
and keeps a named collection containing exactly those items.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, cfg, flagOverrides{
				host:       hostFlag,
				token:      tokenFlag,
				section:    sectionFlag,
				collection: collectionFlag,
				noDelete:   noDeleteFlag,
				logLevel:   logLevelFlag,
				logFormat:  logFormatFlag,
			})
			if err := cfg.Validate(); err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "", "", err)
			}
			return runOnce(cmd, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&hostFlag, "host", "H", "", "Plex server URL (default http://localhost:32400)")
	rootCmd.Flags().StringVarP(&tokenFlag, "token", "t", "", "Plex token")
	rootCmd.Flags().StringVarP(&sectionFlag, "section", "s", "", "Library section to scan")
	rootCmd.Flags().StringVarP(&collectionFlag, "collection", "c", "", `Collection name (default "Movies with Extras")`)
	rootCmd.Flags().BoolVar(&noDeleteFlag, "no-delete", false, "Keep collection members that have no local extras")
	rootCmd.Flags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&logFormatFlag, "log-format", "", "Log format: console or json")

	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

type flagOverrides struct {
	host       string
	token      string
	section    string
	collection string
	noDelete   bool
	logLevel   string
	logFormat  string
}

// applyFlagOverrides lets command-line flags shadow the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, overrides flagOverrides) {
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Plex.Host = strings.TrimRight(strings.TrimSpace(overrides.host), "/")
	}
	if flags.Changed("token") {
		cfg.Plex.Token = strings.TrimSpace(overrides.token)
	}
	if flags.Changed("section") {
		cfg.Plex.Section = strings.TrimSpace(overrides.section)
	}
	if flags.Changed("collection") {
		cfg.Collection.Name = strings.TrimSpace(overrides.collection)
	}
	if flags.Changed("no-delete") {
		cfg.Collection.NoDelete = overrides.noDelete
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(overrides.logLevel))
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = strings.ToLower(strings.TrimSpace(overrides.logFormat))
	}
}

func runOnce(cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	prompter := prompt.New()
	if cfg.Plex.Token == "" {
		if !prompter.Interactive() {
			return services.Wrap(services.ErrConfiguration, "config", "",
				"plex.token is required; set it in the config file, pass --token, or run in a terminal", nil)
		}
		token, err := prompter.Ask("Enter your Plex token")
		if err != nil {
			return err
		}
		cfg.Plex.Token = token
	}

	release, err := runlock.Acquire(cfg.Paths.StateDir)
	if err != nil {
		return err
	}
	defer release()

	clientID, err := plex.ClientIdentifier(cfg.Paths.StateDir)
	if err != nil {
		return err
	}

	client := plex.NewClient(cfg.Plex.Host, cfg.Plex.Token, clientID,
		logging.WithComponent(logger, "plex"))
	runner := collector.New(client, prompter, cfg, logging.WithComponent(logger, "collector"))

	summary, err := runner.Run(cmd.Context())
	if summary != nil {
		fmt.Fprint(cmd.OutOrStdout(), renderSummary(summary, cfg.Collection.Name, cfg.Collection.NoDelete))
	}
	return err
}
