// Package colortransfer recolors a target image so that its color statistics match a source image.
//
// This is an implementation of correlated color space transfer (Xiao and Ma, 2006) with axis
// ruggedization. Each image's pixel colors are modeled as a 3-D Gaussian, the target distribution
// is whitened along its principal axes, re-scaled and rotated into the source distribution's shape,
// and re-centered on the source mean. The whole transfer folds into a single affine map that is
// applied to every target pixel.
package colortransfer
