package adif

// ConfirmFunc asks a yes/no question. Returning false declines.
type ConfirmFunc func(message string) bool

// ProgressFunc receives user-facing progress messages.
type ProgressFunc func(message string)

type loadOptions struct {
	confirm    ConfirmFunc
	progress   ProgressFunc
	sourceName string
}

// Option configures Load.
type Option func(*loadOptions)

// WithConfirm sets the callback consulted before exporting an annotated
// specification. Without one the export is declined.
func WithConfirm(fn ConfirmFunc) Option {
	return func(o *loadOptions) {
		o.confirm = fn
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *loadOptions) {
		o.progress = fn
	}
}

// WithSourceName overrides the document name used to detect annotated
// specifications.
func WithSourceName(name string) Option {
	return func(o *loadOptions) {
		o.sourceName = name
	}
}

func (o *loadOptions) report(msg string) {
	if o.progress != nil {
		o.progress(msg)
	}
}
