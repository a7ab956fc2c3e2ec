package main

import "github.com/pageza/recipe-picker/backend/internal/cli"

func main() {
	cli.Execute()
}
