// Package version reports the middlewarekit release compiled into a binary.
//
// The version is read from the build info of the importing binary. It can be
// overridden at link time:
//
//	go build -ldflags "-X github.com/kbukum/middlewarekit/version.Version=v1.2.0"
package version
