package main

import (
	"os"

	"github.com/pokertime/pokertime/app"
	"github.com/pokertime/pokertime/report"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	if err := run(os.Args); err != nil {
		report.Quit(err)
	}
}
