package courtcommon

// Version strings reported by the version endpoint.
var (
	ServerVersion = "0.1.0"
	ApiVersion    = "0.1.0-alpha.1"
)
