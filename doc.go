// Package main is the entry point of appsettings. It keeps one settings
// record per entity type, stores only the fields that differ from their
// declared defaults and serves them through a fiber JSON API and a cobra CLI.
package main
