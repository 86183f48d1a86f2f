// Command ogmofmt rewrites Ogmo levels (.json) and projects (.ogmo) in the
// editor's own layout, checking that nothing is lost on the way.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/stdr"
)

func main() {
	check := flag.Bool("check", false, "only report files whose formatting would change")
	write := flag.Bool("w", false, "write the result back to the source file")
	compact := flag.Bool("compact", false, "write compact JSON instead of indented")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: ogmofmt [flags] file...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		stdr.SetVerbosity(1)
	}
	logger := stdr.New(log.New(os.Stderr, "", 0)).WithName("ogmofmt")

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		res, err := formatFile(path, !*compact)
		if err != nil {
			logger.Error(err, "format failed", "file", path)
			failed = true
			continue
		}
		logger.V(1).Info("formatted", "file", path, "changed", res.changed)
		switch {
		case *check:
			if res.changed {
				fmt.Println(path)
				failed = true
			}
		case *write:
			if !res.changed {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				logger.Error(err, "stat failed", "file", path)
				failed = true
				continue
			}
			if err := os.WriteFile(path, res.out, info.Mode().Perm()); err != nil {
				logger.Error(err, "write failed", "file", path)
				failed = true
			}
		default:
			os.Stdout.Write(res.out)
		}
	}
	if failed {
		os.Exit(1)
	}
}
