package tessera

// Version is the library version, overridable at build time with
// -ldflags "-X github.com/avral/tessera.Version=...".
var Version = "0.3.0"
