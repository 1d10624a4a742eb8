package version

// Version is overridden at build time with
// -ldflags "-X github.com/wrtgvr/statusboard/internal/version.Version=..."
var Version = "3.0.0"
