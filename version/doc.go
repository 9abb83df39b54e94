// Package version reports build information for lambdakit functions.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/lambdakit/version.Version=1.0.0"
//
// When deployed, the published Lambda function version is read from the
// runtime environment.
package version
