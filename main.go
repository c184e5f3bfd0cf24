package main

import (
	"log"

	"github.com/pbessa/jobradar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
