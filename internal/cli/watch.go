package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/psdui/pkg/pipeline"
)

// watchOpts holds the command-line flags for the watch command.
type watchOpts struct {
	interval time.Duration
	canvas   bool
	once     bool
	noCache  bool
}

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	opts := watchOpts{interval: pipeline.DefaultWatchInterval}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-import tracked documents when they change",
		Long: `Re-import the documents listed under "tracked" in the configuration
file whenever they change on disk. Every tracked document is imported when
watching starts. With --once the tracked documents are imported a single
time and the command exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, cleanup, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(runner.Config.Tracked) == 0 {
				printWarning("No tracked documents in %s", c.configFile())
				return nil
			}

			host := pipeline.NewHost(runner.Registry, c.Logger)
			if !opts.once {
				return runner.Watch(cmd.Context(), host, opts.interval, opts.canvas)
			}

			jobs := runner.ImportTracked(cmd.Context(), host, opts.canvas)
			if err := host.Run(cmd.Context(), 0); err != nil {
				return err
			}
			var failed int
			for _, job := range jobs {
				if job.State != pipeline.StateDone {
					failed++
				}
			}
			printDetail("%d ticks", host.Ticks())
			if failed > 0 || len(jobs) < len(runner.Config.Tracked) {
				return fmt.Errorf("%d of %d tracked imports failed", len(runner.Config.Tracked)-len(jobs)+failed, len(runner.Config.Tracked))
			}
			printSuccess("Imported %d tracked documents", len(jobs))
			return nil
		},
	}

	cmd.Flags().DurationVar(&opts.interval, "interval", opts.interval, "polling interval")
	cmd.Flags().BoolVar(&opts.canvas, "canvas", false, "wrap each scene in a canvas")
	cmd.Flags().BoolVar(&opts.once, "once", false, "import tracked documents once and exit")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the tree cache")

	return cmd
}
