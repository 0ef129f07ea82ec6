package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	JSON      bool   `long:"json" description:"Dump the raw API records as JSON instead of the summary view"`
	Debug     bool   `long:"debug" description:"Enable debug logging"`
	APIKey    string `long:"api-key" description:"MalBeacon API key (overrides MALBEACON_API_KEY)"`
	BaseURL   string `long:"base-url" description:"Override the API base URL"`
	UserAgent string `long:"user-agent" description:"Override the HTTP User-Agent header"`
	Timeout   string `long:"timeout" description:"HTTP timeout for the lookup (e.g. 30s, 2m)"`
	Version   bool   `long:"version" description:"Show version and exit"`
}

// CookieCommand looks up C2 beacons by tracking cookie identifier.
type CookieCommand struct {
	Args struct {
		CookieID string `positional-arg-name:"cookie_id" description:"Tracking cookie identifier to query"`
	} `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}
