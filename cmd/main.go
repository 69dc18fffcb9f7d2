package main

import (
	"context"
	"fmt"
	"os"

	tm "github.com/buger/goterm"
	"github.com/itsatony/smartrooms/internal/auth"
	"github.com/itsatony/smartrooms/internal/config"
	"github.com/itsatony/smartrooms/internal/database"
	"github.com/itsatony/smartrooms/internal/seed"
	"github.com/itsatony/smartrooms/internal/server"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	nuts "github.com/vaudience/go-nuts"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		nuts.L.Errorf("[Main] %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:           "smartrooms",
		Short:         "Campus smart rooms API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				nuts.L.Warnf("[Main] Could not load .env: %v", err)
			}
			nuts.InitVersion()

			var err error
			cfg, err = config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file (default ./config/config.yaml)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(c *cobra.Command, args []string) error {
			ClearConsole()
			DrawLogo()
			nuts.L.Infof("[Main] Starting Smart Rooms server v%s", nuts.GetVersion())
			return server.New(cfg).Start()
		},
	}
	rootCmd.RunE = serveCmd.RunE

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables if they do not exist",
		RunE: func(c *cobra.Command, args []string) error {
			db, err := database.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.Migrate(c.Context(), db); err != nil {
				return err
			}
			nuts.L.Infof("[Main] %s schema is up to date", db.Dialect())
			return nil
		},
	}

	var withDemo bool
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default accounts and, optionally, a demo campus",
		RunE: func(c *cobra.Command, args []string) error {
			cfg.Database.AutoMigrate = true
			app, err := server.Bootstrap(c.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := seed.Users(c.Context(), app.Campus); err != nil {
				return err
			}
			if withDemo {
				return seed.Campus(c.Context(), app.Campus)
			}
			return nil
		},
	}
	seedCmd.Flags().BoolVar(&withDemo, "demo", true, "Also create demo buildings, floors and sensors")

	hashCmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash stored in users.password_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0], cfg.Auth.BcryptCost)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), hash)
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, hashCmd)
	return rootCmd
}

// ClearConsole clears the console screen before the logo is drawn.
func ClearConsole() {
	tm.Clear()
	tm.MoveCursor(1, 1)
	tm.Flush()
}

func DrawLogo() {
	fmt.Println()
	lines := []string{
		"   _____                      __  ____                            ",
		"  / ___/____ ___  ____ ______/ /_/ __ \\____  ____  ____ ___  _____",
		"  \\__ \\/ __ `__ \\/ __ `/ ___/ __/ /_/ / __ \\/ __ \\/ __ `__ \\/ ___/",
		" ___/ / / / / / / /_/ / /  / /_/ _, _/ /_/ / /_/ / / / / / (__  ) ",
		"/____/_/ /_/ /_/\\__,_/_/   \\__/_/ |_|\\____/\\____/_/ /_/ /_/____/  ",
		"..................................................................  " + nuts.GetVersion(),
	}

	for _, line := range lines {
		fmt.Println(line)
	}
}
