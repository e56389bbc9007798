// Package main provides the libdb command line tool.
//
// Usage:
//
//	libdb analyze --org 复旦大学
//	libdb analyze --url https://library.example.edu.cn/db --format markdown
//	libdb locate --org 复旦大学
//	libdb extract --file page.html --raw
package main

func main() {
	Execute()
}
