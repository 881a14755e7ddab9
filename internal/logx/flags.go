// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package logx

import (
	"flag"
	"fmt"
	"os"
)

var (
	levelFlag   = flag.String("level", "warn", "set log level: [debug, info, warn, error, fatal]")
	verboseFlag = flag.Bool("v", true, "log on stderr")
	fileFlag    = flag.String("logfile", "", "also log to file")
)

// Init registers the stderr and (optional) file sinks described by
// the -level/-v/-logfile flags. Call after flag.Parse.
func Init() {
	level, err := ParseLevel(*levelFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *verboseFlag {
		AddLogger("stderr", os.Stderr, level)
	}

	if *fileFlag != "" {
		f, err := os.OpenFile(*fileFlag, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		AddLogger("file", f, level)
	}
}
