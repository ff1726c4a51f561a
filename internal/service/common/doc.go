// Package common holds helpers shared by several services.
//
// It detects the current host (hostname/username) for telemetry records and
// guards against running two monitors for the same user at once.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
