package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/csweichel/plexfs/pkg/config"
	"github.com/csweichel/plexfs/pkg/plex"
	"github.com/csweichel/plexfs/pkg/plexfs"
)

var rootOpts struct {
	Verbose bool

	Config  string
	Host    string
	Token   string
	Section uint64
	Kind    string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "plexfs",
	Short: "Mount a Plex server as a local filesystem",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootOpts.Verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVarP(&rootOpts.Config, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&rootOpts.Host, "host", "", "Plex server endpoint (host:port)")
	rootCmd.PersistentFlags().StringVarP(&rootOpts.Token, "token", "t", "", "Plex API token")
	rootCmd.PersistentFlags().Uint64VarP(&rootOpts.Section, "section", "s", 0, "Plex library section id")
	rootCmd.PersistentFlags().StringVarP(&rootOpts.Kind, "kind", "k", "", "media kind: music, tv or video")
}

// loadConfig merges the config file and environment with any
// overriding command line flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootOpts.Config)
	if err != nil {
		return nil, err
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("host") {
		cfg.Host = rootOpts.Host
	}
	if flags.Changed("token") {
		cfg.Token = rootOpts.Token
	}
	if flags.Changed("section") {
		cfg.Section = rootOpts.Section
	}
	if flags.Changed("kind") {
		cfg.Kind = rootOpts.Kind
	}

	if cfg.Token == "" {
		return nil, fmt.Errorf("missing Plex token (--token or $PLEX_TOKEN)")
	}
	return cfg, nil
}

func newDriver() (*plexfs.Driver, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	kind, err := plex.ParseMediaKind(cfg.Kind)
	if err != nil {
		return nil, err
	}

	client := plex.NewClient(cfg.Host, cfg.Token)
	return plexfs.NewDriver(client, cfg.Section, kind, plexfs.Options{
		UID: cfg.UID,
		GID: cfg.GID,
	}), nil
}
