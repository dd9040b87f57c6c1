package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	snapOpts   sessionOptions
	snapWarmup int
)

var snapCmd = &cobra.Command{
	Use:   "snap [output]",
	Short: "Capture one frame, filter it and save it",
	Long: `Capture one frame, filter it and save it.

The encoding follows the output extension (.jpg, .jpeg, .png, .bmp, .tif,
.tiff); an output without extension is saved as JPEG. The output defaults to
the path in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if err := snapOpts.apply(cmd, cfg); err != nil {
			return err
		}

		output := cfg.Output.Path
		if len(args) == 1 {
			output = args[0]
		}
		return runSnap(cmd, output)
	},
}

func init() {
	addSessionFlags(snapCmd, &snapOpts)
	snapCmd.Flags().IntVar(&snapWarmup, "warmup", 5, "Frames to drop before the captured one (lets cameras settle exposure)")
	rootCmd.AddCommand(snapCmd)
}

func runSnap(cmd *cobra.Command, output string) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Run(cmd.Context(), snapWarmup+1, nil); err != nil {
		return err
	}

	path, err := s.Save(output)
	if err != nil {
		return fmt.Errorf("failed to save frame: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", path, s.Current().ID())
	return nil
}
