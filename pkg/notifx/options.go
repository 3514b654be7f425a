package notifx

// SendOptions are provider hints for one send.
type SendOptions struct {
	Tags     map[string]string
	ConfigID string
}

type Option func(*SendOptions)

// WithTags attaches metadata that providers may record, such as SES
// message tags.
func WithTags(tags map[string]string) Option {
	return func(o *SendOptions) { o.Tags = tags }
}

// WithConfigID selects a provider configuration set.
func WithConfigID(id string) Option {
	return func(o *SendOptions) { o.ConfigID = id }
}

// ApplySendOptions folds opts for providers.
func ApplySendOptions(opts []Option) SendOptions {
	var so SendOptions
	for _, o := range opts {
		o(&so)
	}
	return so
}
