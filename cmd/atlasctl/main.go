// Command atlasctl drives a tile atlas from the command line: it replays
// scenario files, runs random workloads and packs glyph sets.
package main

func main() {
	execute()
}
