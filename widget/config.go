package widget

// Config is the tenant-facing widget configuration. The runtime holds a
// read-only cached copy: fetched at startup, replaced wholesale on every
// successful refresh, never partially merged except that empty fields fall
// back to the built-in defaults.
type Config struct {
	UID          string
	PrimaryColor string
	BusinessName string
	BusinessInfo string
	SalesRepName string
}

// Defaults returns the built-in configuration used until the tenant settings
// resolve, and permanently when resolution exhausts its retries.
func Defaults() Config {
	return Config{
		PrimaryColor: "#2563eb",
		BusinessName: "AI Sales Assistant",
		BusinessInfo: "",
		SalesRepName: "",
	}
}

// settingsPayload is the wire shape of GET /settings.
type settingsPayload struct {
	PrimaryColor string `json:"primary_color"`
	BusinessName string `json:"business_name"`
	BusinessInfo string `json:"business_info"`
	SalesRepName string `json:"sales_rep_name"`
}

// mergeConfig maps every optional field to its default when the fetched
// value is empty. The mapping is total and evaluated once per successful
// resolution, so no partial or stale merge can survive a retry.
func mergeConfig(defaults Config, fetched settingsPayload) Config {
	merged := defaults
	if fetched.PrimaryColor != "" {
		merged.PrimaryColor = fetched.PrimaryColor
	}
	if fetched.BusinessName != "" {
		merged.BusinessName = fetched.BusinessName
	}
	if fetched.BusinessInfo != "" {
		merged.BusinessInfo = fetched.BusinessInfo
	}
	if fetched.SalesRepName != "" {
		merged.SalesRepName = fetched.SalesRepName
	}
	return merged
}

// applyOverrides layers embed-time visual options over a resolved config.
func applyOverrides(cfg Config, opts Options) Config {
	if opts.PrimaryColor != "" {
		cfg.PrimaryColor = opts.PrimaryColor
	}
	if opts.BusinessName != "" {
		cfg.BusinessName = opts.BusinessName
	}
	if opts.BusinessInfo != "" {
		cfg.BusinessInfo = opts.BusinessInfo
	}
	if opts.SalesRepName != "" {
		cfg.SalesRepName = opts.SalesRepName
	}
	return cfg
}
