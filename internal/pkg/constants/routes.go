package constants

// Static route constants
const (
	DownloadsRoute = "/downloads"
	PublicRoute    = "/"
	// Download path without leading slash for URL construction
	DownloadsPath = "downloads"
)
