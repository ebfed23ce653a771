package main

import "github.com/VictorZP/halfs-app-sub001/internal/cli"

func main() {
	cli.Execute()
}
