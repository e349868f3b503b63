package cmd

import (
	"fmt"
	"strconv"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/csweichel/plexfs/pkg/plexfs"
)

// lsCmd lists one directory of the virtual filesystem without
// mounting anything, which is handy for checking token and section id.
var lsCmd = &cobra.Command{
	Use:   "ls [ratingKey]",
	Short: "Lists the section root or the children of a collection",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		drv, err := newDriver()
		if err != nil {
			log.WithError(err).Fatal("cannot build driver")
		}

		ino := uint64(plexfs.RootInode)
		if len(args) == 1 {
			key, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				log.WithError(err).Fatal("invalid rating key")
			}
			ino += key
		}

		entries, err := drv.Entries(ino, 0)
		if err != nil {
			log.WithError(err).Fatal("cannot list entries")
		}

		for _, e := range entries {
			kind := "-"
			if e.Mode == syscall.S_IFDIR {
				kind = "d"
			}
			fmt.Printf("%s %12d %8d %s\n", kind, e.Attr.Size, e.Ino-plexfs.RootInode, e.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
