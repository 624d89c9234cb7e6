package cfg

type Cfg struct {
	// Delivery configuration
	WebhookURL        string
	NotifyTimeout     int
	MessageIntervalMs int

	// Source configuration
	SourcesDir   string
	FetchTimeout int

	// Seen-set storage
	SeenFile string

	// Preview configuration
	PreviewWords int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
