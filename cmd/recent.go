package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/csweichel/plexfs/pkg/plex"
)

// recentCmd represents the recent command
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Shows the server's recently added items",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.WithError(err).Fatal("cannot load config")
		}
		kind, err := plex.ParseMediaKind(cfg.Kind)
		if err != nil {
			log.WithError(err).Fatal("cannot parse media kind")
		}

		client := plex.NewClient(cfg.Host, cfg.Token)
		container, err := client.RecentlyAdded(kind)
		if err != nil {
			log.WithError(err).Fatal("cannot fetch recently added items")
		}

		for _, item := range container.Items {
			title := item.Title
			if item.ParentTitle != "" {
				title = item.ParentTitle + " - " + title
			}
			fmt.Printf("%8d  %s\n", item.RatingKey, title)
		}
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)
}
