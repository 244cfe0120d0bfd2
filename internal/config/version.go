package config

// Version is the reellog binary version.
// Set at build time via: -ldflags "-X github.com/reellog/reellog/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
