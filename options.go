package envcfg

import "github.com/go-logr/logr"

type options struct {
	env        Environment
	log        logr.Logger
	strictBool bool
}

// Option configures Initialize.
type Option func(*options)

// WithEnvironment resolves against env instead of the process environment.
func WithEnvironment(env Environment) Option {
	return func(o *options) { o.env = env }
}

// WithLogger sets the logger. Resolution details are logged at V(1).
func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithStrictBool rejects boolean values outside "t", "true", "1", "on",
// "f", "false", "0", "off" instead of reading them as false.
func WithStrictBool() Option {
	return func(o *options) { o.strictBool = true }
}

func newOptions(opts []Option) options {
	o := options{env: OSEnvironment{}, log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.env == nil {
		o.env = OSEnvironment{}
	}
	return o
}
