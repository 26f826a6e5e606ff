// Command irq-gen writes the interrupt line table of package irq from a
// target file or a CMSIS SVD file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

var (
	input   string
	series  string
	output  string
	pkgName string
)

func init() {
	flag.StringVar(&input, "in", "", "input targets.yaml or .svd file")
	flag.StringVar(&series, "series", "", "series to take the line count from (targets.yaml only)")
	flag.StringVar(&output, "out", "lines_gen.go", "output file")
	flag.StringVar(&pkgName, "pkg", "irq", "package name of the generated file")
}

func main() {
	flag.Parse()
	if input == "" {
		flag.Usage()
		os.Exit(2)
	}

	buf, err := os.ReadFile(input)
	if err != nil {
		log.Fatal("file io error: ", err)
	}

	table, err := readTable(input, buf, series)
	if err != nil {
		log.Fatalf("%s: %v", input, err)
	}

	src, err := generate(pkgName, table)
	if err != nil {
		log.Fatal("generator error: ", err)
	}

	if err = os.WriteFile(output, src, 0644); err != nil {
		log.Fatal("file io error: ", err)
	}

	fmt.Printf("%s: %d lines from %s\n", output, table.count(), table.source)
}
