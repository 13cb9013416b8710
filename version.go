package main

// _version is the version of play2html reported by the -version flag.
//
// Release builds override this with the tag being released.
var _version = "0.1.0-dev"
