package handler

const (
	// APIRoot is the prefix of the settings JSON API.
	APIRoot = "/api"

	// RouterRootPath is the root path of a route group.
	RouterRootPath = "/"

	// ErrNilACRFatalLogMsg is used if the app, cfg or reconciler pointer is nil.
	ErrNilACRFatalLogMsg = "app, cfg or reconciler is nil"
)
