package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gamesmith/gamesmith-go/internal/api"
	"github.com/gamesmith/gamesmith-go/internal/dna"
	"github.com/gamesmith/gamesmith-go/internal/generate"
	"github.com/gamesmith/gamesmith-go/internal/seedcode"
	"github.com/gamesmith/gamesmith-go/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "gamesmith-server",
	Short: "Generative game engine: seed codes, rule composition and chaos",
	Long: `gamesmith-server turns a wizard's choice record into a playable game
configuration: a shareable seed code, a composed rule set, a chaos
schedule and feedback loop metadata. Run "serve" for the HTTP API or
use "generate"/"decode" directly from the shell.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		defer logger.Sync()

		var db store.DB
		if path := viper.GetString("db_path"); path != "" {
			sqlite, err := store.NewSQLiteDB(path)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			if err := sqlite.Migrate(); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
			defer sqlite.Close()
			db = sqlite
		}

		server := api.NewServer(db, logger)
		addr := viper.GetString("addr")
		httpServer := &http.Server{
			Addr:         addr,
			Handler:      server.Routes(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0, // websocket sessions stay open
			IdleTimeout:  120 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server listening",
				zap.String("addr", addr),
				zap.String("version", api.EngineVersion),
				zap.Bool("persistence", db != nil),
			)
			errCh <- httpServer.ListenAndServe()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			logger.Info("shutting down", zap.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(ctx)
		}
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a game configuration from flags and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbs, _ := cmd.Flags().GetStringSlice("verbs")
		d := dna.GameDNA{Verbs: verbs}
		d.Genre, _ = cmd.Flags().GetString("genre")
		d.GravityMode, _ = cmd.Flags().GetString("gravity")
		d.SpecialPhysics, _ = cmd.Flags().GetString("physics")
		d.Difficulty, _ = cmd.Flags().GetString("difficulty")
		d.ChaosLevel, _ = cmd.Flags().GetInt("chaos")

		seed, _ := cmd.Flags().GetInt64("seed")
		if seed == 0 {
			seed = generate.NewInternalSeed()
		}
		game := generate.FromDNA(d, seed)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(game)
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode [seed-code]",
	Short: "Decode a seed code and print its fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(seedcode.Decode(args[0]))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the engine version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), api.EngineVersion)
	},
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		cfg.Level = lvl
	}
	return cfg.Build()
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("db", "gamesmith.db", "sqlite database path (empty to disable persistence)")
	serveCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	generateCmd.Flags().StringSlice("verbs", []string{dna.VerbJump}, "core verbs (1-3)")
	generateCmd.Flags().String("genre", dna.GenrePlatformer, "game genre")
	generateCmd.Flags().String("gravity", dna.GravityNormal, "gravity mode")
	generateCmd.Flags().String("physics", dna.PhysicsNone, "special physics mode")
	generateCmd.Flags().String("difficulty", dna.DifficultyBalanced, "difficulty style")
	generateCmd.Flags().Int("chaos", 0, "chaos level 0-100")
	generateCmd.Flags().Int64("seed", 0, "internal seed (0 draws a fresh one)")

	viper.SetEnvPrefix("GAMESMITH")
	viper.AutomaticEnv()
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("db_path", serveCmd.Flags().Lookup("db"))
	viper.BindPFlag("log_level", serveCmd.Flags().Lookup("log-level"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
