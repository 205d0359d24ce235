package main

import "metarules/internal/cli"

func main() {
	cli.Execute()
}
