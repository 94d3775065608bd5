package colortransfer

const (
	defaultDegenerateThreshold = 1e-6
	defaultQuality             = 95
)

const (
	maxChannelValue = 255.0
	invChannelValue = 1.0 / maxChannelValue
)
