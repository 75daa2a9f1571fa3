package main

import (
	"flag"
	"log"
	"os"

	"github.com/crystal-mush/mudbits/pkg/palette"
)

// Writes the xterm 256-color reference page to a file or stdout.
func main() {
	out := flag.String("o", "", "Output file (default stdout)")
	flag.Parse()

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Error creating %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}
	if err := palette.WritePage(w); err != nil {
		log.Fatalf("Error writing palette page: %v", err)
	}
}
