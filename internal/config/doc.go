// Package config provides configuration structures and utilities for textcrawl.
// It defines the main configuration options for crawling, corpus output,
// and run summary generation preferences.
package config
