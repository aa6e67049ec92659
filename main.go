package main

import (
	_ "github.com/joho/godotenv/autoload"
	"github.com/starshine-sys/guildmirror/cmd"
	"github.com/starshine-sys/guildmirror/common/log"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("%v", err)
	}
}
