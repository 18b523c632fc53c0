package main

import (
	"github.com/joho/godotenv"
	"github.com/mkarlsen/focusplaces/cmd"
)

func main() {
	// Provider keys may live in a local .env; absence is fine.
	_ = godotenv.Load()
	cmd.Execute()
}
