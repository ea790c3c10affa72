// voxctl connects to a world server, logs a player in, and prints the named
// events it is told to watch until interrupted.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/voxlink/voxlink"
	"github.com/voxlink/voxlink/remote"
)

var flags struct {
	configPath string
	address    string
	player     string
	verbose    bool
}

var rootCmd = &cobra.Command{
	Use:           "voxctl",
	Short:         "watch a remote voxel world over its websocket channel",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := defaultRunConfig()
		if flags.configPath != "" {
			var err error
			cfg, err = loadRunConfig(flags.configPath)
			if err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("address") {
			cfg.Address = flags.address
		}
		if cmd.Flags().Changed("player") {
			cfg.Player = flags.player
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = flags.verbose
		}
		return run(cmd.Context(), cfg)
	},
}

func run(ctx context.Context, cfg runConfig) error {
	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	c := voxlink.New(cfg.Address,
		voxlink.WithLogger(log),
		voxlink.WithConnectTimeout(cfg.ConnectTimeout),
		voxlink.WithCallTimeout(cfg.CallTimeout),
	)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	defer c.Disconnect()

	if cfg.Player != "" {
		player, err := remote.Login(ctx, c, cfg.Player)
		if err != nil {
			return fmt.Errorf("login %q: %w", cfg.Player, err)
		}
		log.Info().Str("uuid", player.UUID).Str("world", player.World).Msg("logged in")
	}

	for _, name := range cfg.Events {
		c.On(name, func(data json.RawMessage) {
			log.Info().Str("event", name).RawJSON("data", data).Msg("event")
		})
	}

	log.Info().Msg("watching, ctrl-c to stop")
	<-ctx.Done()
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "voxctl:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "path to config.toml")
	rootCmd.Flags().StringVarP(&flags.address, "address", "a", "localhost:8765", "server host:port")
	rootCmd.Flags().StringVarP(&flags.player, "player", "p", "", "player name to log in as")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")
}
