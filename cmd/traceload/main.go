package main

import (
	"os"

	"github.com/tracelab/traceload/app"
)

func main() {
	app.RunApp(os.Args)
}
