// Command sixelcat decodes a DEC Sixel graphics stream into a PNG image.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/anders-lindqvist/vtraster/sixel"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to a file containing a Sixel control stream (default: stdin)")
	outputFile := flag.String("output", "",
		"Path to write the decoded PNG (default: stdout)")
	flag.Parse()

	in := os.Stdin
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sixelcat: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	buf := sixel.NewBuffer()
	reader := bufio.NewReader(in)
	for {
		ch, _, err := reader.ReadRune()
		if err != nil {
			break
		}
		buf.AddData(ch)
	}

	if !buf.Finalize() {
		fmt.Fprintln(os.Stderr, "sixelcat: stream contained no sixel data")
		os.Exit(1)
	}

	out := os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sixelcat: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := png.Encode(out, buf.Image()); err != nil {
		fmt.Fprintf(os.Stderr, "sixelcat: %v\n", err)
		os.Exit(1)
	}
}
