// Package config provides configuration loading, merging, and validation
// facilities for the gamedeck shell.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources override later sources' fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetConfig], called once per window process.
package config
