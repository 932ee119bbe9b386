package main

// Version of the addonbump CLI, overridden via -ldflags at release time.
var Version = "0.1.0"
