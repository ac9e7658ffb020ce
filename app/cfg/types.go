package cfg

import "time"

type Cfg struct {
	// Application configuration
	Port           string
	FeedConfigPath string
	WarmInterval   time.Duration

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
