package document

// SchemaRule is a single validation rule a clone's root must satisfy before
// a local change is committed. Only Path is checked: it must name a live key
// of the root object. Type is not checked.
type SchemaRule struct {
	Path string
	Type string
}

// Options configures the optional, off-by-default behaviors of a Document.
type Options struct {
	disableGC      bool
	maxSizeLimit   int
	schemaRules    []SchemaRule
	enableDevtools bool
}

func newOptions(opts []Option) Options {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// Option configures a Document at construction time.
type Option func(*Options)

// WithDisableGC turns off garbage collection for this document, useful for
// tests that want to inspect tombstones directly.
func WithDisableGC() Option {
	return func(o *Options) {
		o.disableGC = true
	}
}

// WithMaxSizeLimit caps the document's combined live+gc byte size; updates
// that would exceed it fail with errs.ErrSizeExceedsLimit.
func WithMaxSizeLimit(limit int) Option {
	return func(o *Options) {
		o.maxSizeLimit = limit
	}
}

// WithSchemaRules attaches validation rules checked against the clone
// before a local change is committed.
func WithSchemaRules(rules ...SchemaRule) Option {
	return func(o *Options) {
		o.schemaRules = append(o.schemaRules, rules...)
	}
}

// WithEnableDevtools sets the enableDevtools flag. Nothing in this package
// reads the flag, so it changes neither logging nor events.
func WithEnableDevtools() Option {
	return func(o *Options) {
		o.enableDevtools = true
	}
}
