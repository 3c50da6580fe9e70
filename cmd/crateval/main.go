// Package main provides the crateval CLI for validating structured
// data packages against conformance profiles.
package main

func main() {
	Execute()
}
