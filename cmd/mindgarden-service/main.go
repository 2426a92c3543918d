package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/DavideLicci/MindGarden/gardenservice"
)

func main() {
	if err := gardenservice.Run(); err != nil {
		log.Error().Err(err).Msg("mindgarden-service exited with error")
		os.Exit(1)
	}
}
