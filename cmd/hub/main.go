package main

import (
	"fmt"
	"os"

	"learning-hub/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger *zap.Logger
	cfg    config.Config
)

var rootCmd = &cobra.Command{
	Use:          "hub",
	Short:        "learning-hub - programming language articles",
	SilenceUsage: true,
}

func main() {
	var err error
	logger, err = zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg = config.Load()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Address of Redis server")
	flags.StringVar(&cfg.BadgerPath, "badger", cfg.BadgerPath, "Path to BadgerDB data directory")
	flags.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "HTTP listen address")
	flags.StringVar(&cfg.APIURL, "api", cfg.APIURL, "Base URL of the hub API")
	flags.StringVar(&cfg.Token, "token", cfg.Token, "Admin session token (or HUB_TOKEN)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(adminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
