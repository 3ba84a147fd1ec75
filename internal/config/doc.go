// Package config provides configuration loading, merging, and validation
// facilities for the sync client.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win; later ones only fill fields left zero):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetClientConfig].
package config
