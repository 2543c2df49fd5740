package main

import "github.com/pageza/harvestplan/backend/internal/cli"

func main() {
	cli.Execute()
}
