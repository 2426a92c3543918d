package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/DavideLicci/MindGarden/jobsworker"
)

func main() {
	if err := jobsworker.Run(); err != nil {
		log.Error().Err(err).Msg("jobs-worker exited with error")
		os.Exit(1)
	}
}
