package colortransfer

import (
	"fmt"
	"image"

	"github.com/vearutop/colortransfer/internal/imageio"
)

// Plan holds a composed transform ready to be applied to target pixels.
type Plan struct {
	Matrix  Affine
	Source  ColorStats
	Target  ColorStats
	Match   AxisMatch
	options Options
}

// NewPlan computes statistics of both images, decomposes their covariances,
// matches axes and composes the transform without touching target pixels.
func NewPlan(source, target image.Image, opts ...func(o *Options)) (*Plan, error) {
	if err := validatePair(source, target); err != nil {
		return nil, err
	}
	opt := applyOptions(opts)
	keep := func(o *Options) { *o = opt }

	srcStats, err := ComputeStats(source, keep)
	if err != nil {
		return nil, fmt.Errorf("source statistics: %w", err)
	}
	tgtStats, err := ComputeStats(target, keep)
	if err != nil {
		return nil, fmt.Errorf("target statistics: %w", err)
	}

	srcDec, err := Decompose(srcStats.CovarianceMatrix())
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	tgtDec, err := Decompose(tgtStats.CovarianceMatrix())
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	match := MatchAxes(srcDec, tgtDec, opt.Ruggedize)

	return &Plan{
		Matrix:  ComposeTransform(srcStats, tgtStats, match, keep),
		Source:  srcStats,
		Target:  tgtStats,
		Match:   match,
		options: opt,
	}, nil
}

// Apply transforms img with the planned matrix.
func (p *Plan) Apply(img image.Image) (*image.NRGBA, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}
	return ApplyTransform(img, p.Matrix, func(o *Options) { *o = p.options }), nil
}

// Transfer recolors target so that its color mean and covariance match source.
// The result image has the dimensions of target.
func Transfer(source, target image.Image, opts ...func(o *Options)) (*Result, error) {
	p, err := NewPlan(source, target, opts...)
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(target)
	if err != nil {
		return nil, err
	}
	return &Result{
		Image:  out,
		Matrix: p.Matrix,
		Source: p.Source,
		Target: p.Target,
		Match:  p.Match,
	}, nil
}

// TransferFile reads source and target images, transfers colors and writes the result to outPath.
// The output format is selected by outPath extension.
func TransferFile(sourcePath, targetPath, outPath string, opts ...func(o *Options)) error {
	source, err := imageio.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	target, err := imageio.ReadFile(targetPath)
	if err != nil {
		return fmt.Errorf("read target: %w", err)
	}
	res, err := Transfer(source, target, opts...)
	if err != nil {
		return err
	}

	if err := imageio.WriteFile(outPath, res.Image, applyOptions(opts).Quality); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
