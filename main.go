package main

import (
	"github.com/HughBone/minecraft-stat-saver/cmd"
)

func main() {
	cmd.Execute()
}
