package main

import (
	_ "embed"

	"github.com/haierkeys/fast-note-service/cmd"
)

//go:embed config/config.yaml
var c string

// @title Fast Note Service API
// @version 1.0
// @description Notes with edit history, cookie session authentication.
// @BasePath /
func main() {
	cmd.Execute(c)
}
