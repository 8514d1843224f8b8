package main

import "github.com/pfrederiksen/venue-slots/internal/cli"

func main() {
	cli.Execute()
}
