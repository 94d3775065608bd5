package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vearutop/colortransfer"
	"github.com/vearutop/colortransfer/internal/imageio"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "colortransfer",
		Short:         "Recolor an image to match the color statistics of another",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			colortransfer.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newTransferCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newMatrixCmd())

	return rootCmd
}

type pairFlags struct {
	source    string
	target    string
	ruggedize bool
	threshold float64
	workers   int
	maxSide   uint
}

func (p *pairFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.source, "source", "s", "", "image providing the color scheme")
	cmd.Flags().StringVarP(&p.target, "target", "t", "", "image to be recolored")
	cmd.Flags().BoolVar(&p.ruggedize, "ruggedize", true, "match and sign-correct principal axes")
	cmd.Flags().Float64Var(&p.threshold, "degenerate-threshold", 1e-6, "target axis scale treated as zero")
	cmd.Flags().IntVar(&p.workers, "workers", 0, "parallel workers, 0 uses all CPUs")
	cmd.Flags().UintVar(&p.maxSide, "stats-max-side", 0, "downsample images to this size before statistics, 0 disables")
}

func (p *pairFlags) validate() error {
	if p.source == "" || p.target == "" {
		return errors.New("missing required arguments: --source and --target")
	}
	return nil
}

func (p *pairFlags) apply(o *colortransfer.Options) {
	o.Ruggedize = p.ruggedize
	o.DegenerateThreshold = p.threshold
	o.Workers = p.workers
	o.StatsMaxSide = p.maxSide
}

func newTransferCmd() *cobra.Command {
	var (
		pair    pairFlags
		out     string
		quality int
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Apply source colors to target and write the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := pair.validate(); err != nil {
				return err
			}
			if out == "" {
				return errors.New("missing required arguments: --out")
			}
			err := colortransfer.TransferFile(pair.source, pair.target, out, pair.apply, func(o *colortransfer.Options) {
				o.Quality = quality
			})
			if err != nil {
				return err
			}
			colortransfer.Logger().Info("transfer complete", "out", out)
			return nil
		},
	}
	pair.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image, format by extension")
	cmd.Flags().IntVarP(&quality, "quality", "q", 95, "JPEG output quality")

	return cmd
}

type statsOutput struct {
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Pixels     int           `json:"pixels"`
	Mean       [3]float64    `json:"mean"`
	Covariance [3][3]float64 `json:"covariance"`
}

func newStatsCmd() *cobra.Command {
	var (
		in      string
		maxSide uint
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print color mean and covariance of an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in == "" {
				return errors.New("missing required arguments: --in")
			}
			img, err := imageio.ReadFile(in)
			if err != nil {
				return err
			}
			st, err := colortransfer.ComputeStats(img, func(o *colortransfer.Options) {
				o.StatsMaxSide = maxSide
			})
			if err != nil {
				return err
			}
			b := img.Bounds()
			return writeJSON(cmd.OutOrStdout(), statsOutput{
				Width:      b.Dx(),
				Height:     b.Dy(),
				Pixels:     st.Pixels,
				Mean:       st.Mean,
				Covariance: st.Covariance,
			})
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "input image")
	cmd.Flags().UintVar(&maxSide, "stats-max-side", 0, "downsample image to this size before statistics, 0 disables")

	return cmd
}

type matrixOutput struct {
	Matrix      colortransfer.Affine `json:"matrix"`
	Permutation [3]int               `json:"permutation"`
	Flipped     [3]bool              `json:"flipped"`
	Score       float64              `json:"score"`
	SourceScale [3]float64           `json:"source_scale"`
	TargetScale [3]float64           `json:"target_scale"`
}

func newMatrixCmd() *cobra.Command {
	var pair pairFlags

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the composed 4x4 color transform without writing an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := pair.validate(); err != nil {
				return err
			}
			source, err := imageio.ReadFile(pair.source)
			if err != nil {
				return err
			}
			target, err := imageio.ReadFile(pair.target)
			if err != nil {
				return err
			}
			p, err := colortransfer.NewPlan(source, target, pair.apply)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), matrixOutput{
				Matrix:      p.Matrix,
				Permutation: p.Match.Permutation,
				Flipped:     p.Match.Flipped,
				Score:       p.Match.Score,
				SourceScale: p.Match.SourceScale,
				TargetScale: p.Match.TargetScale,
			})
		},
	}
	pair.register(cmd)

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
