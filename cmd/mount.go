package cmd

import (
	"fmt"

	"github.com/sevlyar/go-daemon"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/csweichel/plexfs/pkg/fusefs"
)

var mountOpts struct {
	AllowOther bool
	Daemonize  bool
}

// mountCmd represents the mount command
var mountCmd = &cobra.Command{
	Use:   "mount <mountpoint>",
	Short: "Mounts a Plex library section as a read-only filesystem",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		drv, err := newDriver()
		if err != nil {
			log.WithError(err).Fatal("cannot build driver")
		}

		if mountOpts.Daemonize {
			cntxt := &daemon.Context{
				PidFileName: "plexfs.pid",
				PidFilePerm: 0644,
				LogFileName: "plexfs.log",
				LogFilePerm: 0640,
			}
			d, err := cntxt.Reborn()
			if err != nil {
				log.WithError(err).Fatal("cannot daemonize")
			}
			if d != nil {
				return
			}
			defer cntxt.Release()
		}

		mnt := args[0]
		server, err := fusefs.Mount(mnt, drv, fusefs.Options{
			AllowOther: mountOpts.AllowOther,
			Debug:      rootOpts.Verbose,
		})
		if err != nil {
			log.WithError(err).Fatal("cannot mount filesystem")
		}

		fmt.Printf("to unmount: fusermount -u %s\n", mnt)
		server.Wait()
	},
}

func init() {
	rootCmd.AddCommand(mountCmd)
	mountCmd.Flags().BoolVar(&mountOpts.AllowOther, "allow-other", false, "allow other users to access the mount")
	mountCmd.Flags().BoolVarP(&mountOpts.Daemonize, "daemon", "d", false, "run in the background")
}
