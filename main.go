package main

import (
	"github.com/kickclipz/Masterclipper/bot"
	"github.com/kickclipz/Masterclipper/utils"
)

func main() {
	utils.InitLogger()
	bot.Start()
}
