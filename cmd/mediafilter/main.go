// Command mediafilter captures frames from a camera, a screen or a test
// pattern, applies one selectable filter per frame and saves snapshots.
package main

func main() {
	Execute()
}
