package main

import (
	"github.com/mj1618/desktop-clippy/cmd"

	_ "github.com/mj1618/desktop-clippy/internal/platform/win"
)

func main() {
	cmd.Execute()
}
