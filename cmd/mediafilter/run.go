package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pion/mediafilter"
	"github.com/pion/mediafilter/pkg/export"
	"github.com/pion/mediafilter/pkg/filter"
	"github.com/pion/mediafilter/pkg/frame"
	"github.com/pion/mediafilter/pkg/io/video"
	"github.com/pion/mediafilter/pkg/prop"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	runOpts        sessionOptions
	runFrames      int
	runSnapEvery   int
	runOutputDir   string
	runMaxFPS      float32
	runInteractive bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Filter frames until interrupted",
	Long: `Filter frames until interrupted or --frames frames were processed.

With --interactive, commands are read from stdin, one per line: a filter name
(original, contrast, posterize, blur, alien, distort) selects that filter
with the configured parameters, "set <param> <value>" changes a parameter
and reapplies the active filter, "save [path]" saves the displayed frame and
"quit" stops. Parameter names are alpha, beta, levels, kernel_size, color,
k_barrel and k_pincushion.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if err := runOpts.apply(cmd, cfg); err != nil {
			return err
		}
		if runSnapEvery < 0 {
			return fmt.Errorf("--snapshot-every must be non-negative")
		}
		return runRun(cmd)
	},
}

func init() {
	addSessionFlags(runCmd, &runOpts)
	runCmd.Flags().IntVarP(&runFrames, "frames", "n", 0, "Number of frames to process (0 = until interrupted)")
	runCmd.Flags().IntVar(&runSnapEvery, "snapshot-every", 0, "Save every Nth frame (0 = never)")
	runCmd.Flags().StringVarP(&runOutputDir, "output-dir", "o", "snapshots", "Directory for periodic snapshots")
	runCmd.Flags().Float32Var(&runMaxFPS, "max-fps", 0, "Drop frames above this rate (0 = no limit)")
	runCmd.Flags().BoolVarP(&runInteractive, "interactive", "i", false, "Read filter commands from stdin")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	transforms := []video.TransformFunc{
		video.DetectChanges(time.Second, 5, func(p prop.Media) {
			logger.Infof("source: %dx%d @ %.2f fps", p.Width, p.Height, p.FrameRate)
		}),
	}
	if runMaxFPS > 0 {
		transforms = append(transforms, video.Throttle(runMaxFPS))
	}

	s, err := openSession(cfg, transforms...)
	if err != nil {
		return err
	}
	defer s.Close()

	if runInteractive {
		go readCommands(ctx, cancel, cmd.InOrStdin(), cmd.OutOrStdout(), s)
	}

	total := runFrames
	if total <= 0 {
		// spinner
		total = -1
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Filtering"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
	)
	defer bar.Finish()

	ext := filepath.Ext(cfg.Output.Path)
	if ext == "" {
		ext = export.DefaultExtension
	}

	err = s.Run(ctx, runFrames, func(*frame.Frame) error {
		bar.Add(1)
		n := s.Frames()
		if runSnapEvery == 0 || n%uint64(runSnapEvery) != 0 {
			return nil
		}
		path := filepath.Join(runOutputDir, fmt.Sprintf("frame-%06d%s", n, ext))
		if _, err := s.Save(path); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		// Ctrl+C or "quit"
		err = nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "\nProcessed %d frames\n", s.Frames())
	return nil
}

// readCommands applies the commands read from r until r ends or ctx is done.
func readCommands(ctx context.Context, cancel func(), r io.Reader, w io.Writer, s *mediafilter.Session) {
	settings := cfg.Filter.Settings
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch name := strings.ToLower(fields[0]); name {
		case "quit", "exit":
			cancel()
			return
		case "save":
			output := cfg.Output.Path
			if len(fields) > 1 {
				output = fields[1]
			}
			path, err := s.Save(output)
			if err != nil {
				fmt.Fprintf(w, "save failed: %v\n", err)
				continue
			}
			fmt.Fprintf(w, "saved %s\n", path)
		case "set":
			if len(fields) < 3 {
				fmt.Fprintln(w, "usage: set <param> <value>")
				continue
			}
			if err := settings.Set(fields[1], fields[2]); err != nil {
				fmt.Fprintf(w, "set failed: %v\n", err)
				continue
			}
			s.Select(settings.Params(s.Current().ID()))
			fmt.Fprintf(w, "%s: %+v\n", s.Current().ID(), s.Current())
		default:
			id := filter.ParseID(name)
			if id == filter.IDOriginal && !strings.EqualFold(name, string(filter.IDOriginal)) {
				fmt.Fprintf(w, "unknown command %q\n", name)
				continue
			}
			s.Select(settings.Params(id))
		}
	}
}
