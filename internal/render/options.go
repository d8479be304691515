package render

import "fmt"

// Options controls a single render.
type Options struct {
	Theme Theme
	Mode  Mode

	Size        int // output edge length in pixels; images are square
	Supersample int // render at Size*Supersample, then downsample
	Margin      int // pixels at output resolution left empty on each side

	Yaw   float64 // degrees around the vertical axis
	Pitch float64 // degrees around the horizontal axis

	LineWidth int // wireframe line width at output resolution
	PointSize int // point-cloud marker size at output resolution
}

// DefaultOptions returns a light, solid render from a three-quarter view.
func DefaultOptions() Options {
	return Options{
		Theme:       Light,
		Mode:        Color,
		Size:        512,
		Supersample: 2,
		Margin:      16,
		Yaw:         -35,
		Pitch:       25,
		LineWidth:   1,
		PointSize:   3,
	}
}

// Validate rejects options Render cannot honor.
func (o Options) Validate() error {
	if o.Theme != Light && o.Theme != Dark {
		return fmt.Errorf("render: invalid theme %d", int(o.Theme))
	}
	if o.Mode != Color && o.Mode != Wireframe {
		return fmt.Errorf("render: invalid mode %d", int(o.Mode))
	}
	if o.Size <= 0 {
		return fmt.Errorf("render: size must be positive, got %d", o.Size)
	}
	if o.Supersample <= 0 {
		return fmt.Errorf("render: supersample must be positive, got %d", o.Supersample)
	}
	if o.Margin < 0 || 2*o.Margin >= o.Size {
		return fmt.Errorf("render: margin %d does not fit size %d", o.Margin, o.Size)
	}
	return nil
}
