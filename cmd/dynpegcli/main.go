package main

import (
	"fmt"
	"os"

	"github.com/dynpeg/dynpeg/dynpegcli"
)

func main() {
	if err := dynpegcli.RootCommand.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
