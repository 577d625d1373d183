package main

import (
	"context"
	"os"

	"github.com/Krosebrook/Flash-n-Frame/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
