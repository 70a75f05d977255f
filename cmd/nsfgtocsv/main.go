package main

// Convert a fixed-width data file described by a Stata dictionary to a
// CSV file.  The CSV contents are sent to standard output.  Missing
// values are written as empty fields.  The data file may be gzip
// compressed.

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dhunton/nsfg"
)

const chunkSize = 1000

func doConversion(w io.Writer, rdr nsfg.StatfileReader) error {

	cw := csv.NewWriter(w)

	if err := cw.Write(rdr.ColumnNames()); err != nil {
		return err
	}
	row := make([]string, len(rdr.ColumnNames()))

	for {
		chunk, err := rdr.Read(chunkSize)
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		nrow := chunk[0].Length()
		for i := 0; i < nrow; i++ {
			for j, s := range chunk {
				// Missing values give "".
				row[j], _ = s.String(i)
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func main() {

	dct := flag.String("dct", "", "Path to the Stata dictionary")
	sniff := flag.Int("sniff", 1000, "Records used to infer column types, -1 for all")
	flag.Parse()

	if *dct == "" || flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s -dct file.dct file.dat[.gz]\n", os.Args[0])
		os.Exit(2)
	}

	dict, err := nsfg.OpenDictionary(*dct)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	f, err := nsfg.OpenData(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rdr := nsfg.NewFixedWidthReader(f, dict)
	rdr.SniffRows = *sniff

	if err := doConversion(os.Stdout, rdr); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
