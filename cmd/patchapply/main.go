// Command patchapply applies a "*** Begin Patch" envelope to files rooted
// at a directory on disk.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/codalotl/codalotl/internal/patchcli"
)

func main() {
	var cfg patchcli.Config
	flag.StringVar(&cfg.Dir, "dir", "", "absolute directory the patch is applied against (required)")
	flag.StringVar(&cfg.PatchPath, "patch", "", "path to the patch file; omit to read from stdin")
	flag.Parse()

	if cfg.Dir == "" {
		fmt.Fprintln(os.Stderr, "patchapply: -dir is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := patchcli.Run(cfg, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "patchapply:", err)
		os.Exit(1)
	}
}
