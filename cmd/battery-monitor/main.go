package main

import "github.com/oshokin/battery-monitor/cmd/battery-monitor/cmd"

func main() {
	cmd.Execute()
}
