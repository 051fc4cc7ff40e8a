// Package constants holds build-time values.
package constants

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/sghaida/eyeosee/internal/constants.Version=v1.2.3"
var Version = "dev"

// AppName is the binary and default service name.
const AppName = "eyeosee"
