package overlay

// Option configures a Display during creation.
//
// Example:
//
//	disp := overlay.New(
//	    overlay.WithVideoIdent("wgpu"),
//	    overlay.WithAnimator(anim),
//	    overlay.WithBaseScale(1.25),
//	)
type Option func(*Display)

// WithVideoIdent sets the identifier of the active video backend that
// driver selection matches candidates against. Defaults to "software".
func WithVideoIdent(ident string) Option {
	return func(d *Display) {
		d.videoIdent = ident
	}
}

// WithAnimator connects the animation subsystem's activity query to the
// update-pending predicate. Without one, only the dirty flag gates
// redraws.
func WithAnimator(a Animator) Option {
	return func(d *Display) {
		d.anim = a
	}
}

// WithMenuKind sets the active menu-rendering style.
func WithMenuKind(k MenuKind) Option {
	return func(d *Display) {
		d.menuKind = k
	}
}

// WithWindowedSupport records whether the host environment supports
// windowed output.
func WithWindowedSupport(enabled bool) Option {
	return func(d *Display) {
		d.hasWindowed = enabled
	}
}

// WithBaseScale sets the user-configured base UI scale. Defaults to 1.
func WithBaseScale(s float32) Option {
	return func(d *Display) {
		d.baseScale = s
	}
}

// WithScaleMultiplier sets the user-configured scale-factor multiplier
// applied on top of the DPI scale. Defaults to 1.
func WithScaleMultiplier(m float32) Option {
	return func(d *Display) {
		d.scaleMultiplier = m
	}
}
