package main

import (
	"PortfolioFM/cmd"
)

func main() {
	cmd.Execute()
}
