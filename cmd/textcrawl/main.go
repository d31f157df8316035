// Package main provides the entry point for the textcrawl CLI.
//
// textcrawl is a breadth-first web crawler that scrapes the visible text
// of pages into a plain-text corpus file.
//
// Usage:
//
//	textcrawl crawl https://www.wikipedia.org
//	textcrawl crawl --max-pages 100 --append https://example.com
//	textcrawl history
//
// See --help for all available options.
package main

// main is the entry point for textcrawl.
func main() {
	Execute()
}
