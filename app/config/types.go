package config

// SourceKind selects which adapter variant enumerates a source.
type SourceKind string

const (
	KindFeed     SourceKind = "feed"
	KindHTML     SourceKind = "html"
	KindRendered SourceKind = "rendered"
)

// SourceConfig represents a complete source definition
type SourceConfig struct {
	Name     string         // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Kind     SourceKind     `yaml:"kind"`
	Settings SourceSettings `yaml:"settings"`
	HTML     HTMLOptions    `yaml:"html"`
	Rendered RenderOptions  `yaml:"rendered"`
}

// SourceSettings contains per-source processing settings
type SourceSettings struct {
	Enabled bool `yaml:"enabled"`
	Timeout int  `yaml:"timeout"` // seconds
}

// HTMLOptions configures the static-HTML adapter: which anchors on the
// listing page count as article links.
type HTMLOptions struct {
	Selector  string `yaml:"selector"`
	MatchText string `yaml:"match_text"`
	Match     string `yaml:"match"` // prefix, suffix or contains
}

// RenderOptions configures the browser-rendered adapter.
type RenderOptions struct {
	ClickLabel   string   `yaml:"click_label"`
	LinkPatterns []string `yaml:"link_patterns"`
}
