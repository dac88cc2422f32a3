package formwork

// Version is the release identifier, overridden at build time via ldflags.
var Version = "dev"
