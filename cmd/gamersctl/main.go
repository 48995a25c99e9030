package main

import "gamersdb/backend/internal/cli"

func main() {
	cli.Execute()
}
