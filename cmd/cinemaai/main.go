package main

import (
	"os"

	"github.com/abhi017z/Movie-Recommender-System/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
