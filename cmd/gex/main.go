package main

import "github.com/Lee-Tyrer/grandexchange-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
