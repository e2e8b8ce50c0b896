package config

// DefaultRuntimeModule is imported by generated code unless overridden
const DefaultRuntimeModule = "svelte/internal/client"

// CompileOptions controls one compilation
type CompileOptions struct {
	// Dev enables development-only instrumentation (key validation,
	// destructuring read-back, $inspect, console state logging).
	Dev bool
	// Runes forces opt-in reactive mode on or off; nil detects it from the
	// component.
	Runes *bool
	// Name is the generated component function name.
	Name string
	// Filename names the component source in source maps.
	Filename      string
	RuntimeModule string
	// RuntimeVersion, when set, is checked against the features the generated
	// code needs.
	RuntimeVersion string
}

// NewCompileOptions creates a new CompileOptions with optional parameters
func NewCompileOptions(opts ...CompileOption) *CompileOptions {
	options := &CompileOptions{
		Name:          "Component",
		RuntimeModule: DefaultRuntimeModule,
	}

	for _, opt := range opts {
		opt(options)
	}

	return options
}

// CompileOption is a function that modifies CompileOptions
type CompileOption func(*CompileOptions)

// WithDev sets development mode
func WithDev(dev bool) CompileOption {
	return func(o *CompileOptions) {
		o.Dev = dev
	}
}

// WithRunes forces runes mode on or off
func WithRunes(runes bool) CompileOption {
	return func(o *CompileOptions) {
		o.Runes = BoolPtr(runes)
	}
}

// WithName sets the component name
func WithName(name string) CompileOption {
	return func(o *CompileOptions) {
		if name != "" {
			o.Name = name
		}
	}
}

// WithFilename sets the source file name used in source maps
func WithFilename(filename string) CompileOption {
	return func(o *CompileOptions) {
		o.Filename = filename
	}
}

// WithRuntimeModule sets the module generated code imports the runtime from
func WithRuntimeModule(module string) CompileOption {
	return func(o *CompileOptions) {
		if module != "" {
			o.RuntimeModule = module
		}
	}
}

// WithRuntimeVersion sets the runtime version to check generated code against
func WithRuntimeVersion(version string) CompileOption {
	return func(o *CompileOptions) {
		o.RuntimeVersion = version
	}
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}
