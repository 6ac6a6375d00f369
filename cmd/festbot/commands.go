package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/m3rciful/festbot/core/buildinfo"
	corecmd "github.com/m3rciful/festbot/core/cmd"
	"github.com/m3rciful/festbot/core/database"
	"github.com/m3rciful/festbot/core/logger"
	"github.com/m3rciful/festbot/festival/bot"
	festconfig "github.com/m3rciful/festbot/festival/config"
	"github.com/m3rciful/festbot/festival/storage"
)

const defaultConfigPath = "config.yaml"

type rootOptions struct {
	ConfigPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "festbot",
		Short:         "Telegram registration bot for the family fishing festival",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "",
		"path to YAML config (default $CONFIG_PATH or "+defaultConfigPath+")")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the bot until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return corecmd.Run(corecmd.Options{
				ConfigPath:        opts.ConfigPath,
				DefaultConfigPath: defaultConfigPath,
				LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
					return festconfig.Load(path)
				},
				Bootstrap: func(ctx context.Context, cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
					fc, ok := cfg.(*festconfig.Config)
					if !ok {
						return nil, fmt.Errorf("unexpected config type %T", cfg)
					}
					return bot.Bootstrap(ctx, fc)
				},
			})
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the registration tables and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := corecmd.ResolveConfigPath(corecmd.Options{
				ConfigPath:        opts.ConfigPath,
				DefaultConfigPath: defaultConfigPath,
			})
			if err != nil {
				return err
			}
			dbCfg, err := festconfig.LoadDatabase(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if err := logger.InitLogger(nil); err != nil {
				return err
			}
			defer func() {
				if err := logger.Shutdown(); err != nil {
					log.Printf("logger shutdown error: %v", err)
				}
			}()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			db, err := database.Connect(dbCfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := storage.New(db, dbCfg).InitSchema(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema is up to date (%s)\n", dbCfg.Target())
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "festbot "+buildinfo.String())
		},
	}
}
