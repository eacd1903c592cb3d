package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soundbound/soundbound-server/config"
	"github.com/soundbound/soundbound-server/log"
	"github.com/soundbound/soundbound-server/server"
	"github.com/soundbound/soundbound-server/store"
	"github.com/soundbound/soundbound-server/store/db"
)

const (
	greetingBanner = `
███████  ██████  ██    ██ ███    ██ ██████  ██████   ██████  ██    ██ ███    ██ ██████
██      ██    ██ ██    ██ ████   ██ ██   ██ ██   ██ ██    ██ ██    ██ ████   ██ ██   ██
███████ ██    ██ ██    ██ ██ ██  ██ ██   ██ ██████  ██    ██ ██    ██ ██ ██  ██ ██   ██
     ██ ██    ██ ██    ██ ██  ██ ██ ██   ██ ██   ██ ██    ██ ██    ██ ██  ██ ██ ██   ██
███████  ██████   ██████  ██   ████ ██████  ██████   ██████   ██████  ██   ████ ██████
`
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:   "soundbound",
		Short: "SoundBound pairs the books you read with the music you hear",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			database, err := db.NewDB(config.Opts.DSN)
			if err != nil {
				log.Error("Error connecting to database", zap.Error(err))
				return
			}
			defer database.Close()
			if err := database.Migrate(ctx); err != nil {
				log.Error("Error migrating database", zap.Error(err))
				return
			}

			store := store.NewStore(database.DB)
			if err := store.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return
			}

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
				<-sigCh
				cancel()
			}()

			fmt.Printf("%s\n", greetingBanner)
			if err := server.StartServer(ctx, store); err != nil {
				log.Error("Server stopped", zap.Error(err))
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (TOML)")
	rootCmd.PersistentFlags().String("host", "", "host to listen on")
	rootCmd.PersistentFlags().Int("port", 0, "port to listen on")
	rootCmd.PersistentFlags().String("data", "", "data directory")

	cobra.OnInitialize(func() {
		config.GetDefaultOptions()
		if configFile != "" {
			if _, err := config.ParseFile(configFile); err != nil {
				log.Error("Error parsing config file", zap.Error(err))
				os.Exit(1)
			}
		}
		if host, _ := rootCmd.PersistentFlags().GetString("host"); host != "" {
			config.Opts.Host = host
		}
		if port, _ := rootCmd.PersistentFlags().GetInt("port"); port != 0 {
			config.Opts.Port = port
		}
		if data, _ := rootCmd.PersistentFlags().GetString("data"); data != "" {
			config.Opts.Data = data
		}
		if _, err := config.GetConfig(); err != nil {
			log.Error("Error resolving config", zap.Error(err))
			os.Exit(1)
		}
		log.Logger = log.NewLogger()
	})
}

func main() {
	defer log.Logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		log.Error("Failed to start", zap.Error(err))
		os.Exit(1)
	}
}
