package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/clinicalforecast/edi-loader/edi/edicli"
)

func main() {
	app := edicli.GetApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
