// nsfgtoparquet converts a fixed-width data file described by a Stata
// dictionary to a parquet file.  Numeric columns are written as
// optional DOUBLE columns and string columns as optional UTF8 byte
// arrays; missing values are written as nulls.  Column types are
// settled by the reader's type inference, so they are known only after
// the first chunk has been read.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/dhunton/nsfg"
)

// metadata returns the parquet column definitions for the given
// columns.
func metadata(cnames []string, ctypes []nsfg.ColumnType) ([]string, error) {

	md := make([]string, len(cnames))
	for j := range cnames {
		switch ctypes[j] {
		case nsfg.NumericType:
			md[j] = fmt.Sprintf("name=%s, type=DOUBLE, repetitiontype=OPTIONAL", cnames[j])
		case nsfg.StringType:
			md[j] = fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", cnames[j])
		default:
			return nil, fmt.Errorf("column %s: unknown data type %v", cnames[j], ctypes[j])
		}
	}

	return md, nil
}

// convert writes every record of rdr to fw, reading chunksize records
// at a time, and returns the number of records written.
func convert(rdr nsfg.StatfileReader, fw source.ParquetFile, chunksize int) (int, error) {

	var pw *writer.CSVWriter
	ntot := 0

	for {
		dat, err := rdr.Read(chunksize)
		if err == io.EOF {
			break
		} else if err != nil {
			return ntot, err
		}

		if pw == nil {
			md, err := metadata(rdr.ColumnNames(), rdr.ColumnTypes())
			if err != nil {
				return 0, err
			}
			pw, err = writer.NewCSVWriter(md, fw, 4)
			if err != nil {
				return 0, fmt.Errorf("can't create parquet writer: %w", err)
			}
			pw.RowGroupSize = 128 * 1024 * 1024 //128M
			pw.CompressionType = parquet.CompressionCodec_SNAPPY
		}

		nrow := dat[0].Length()
		for i := 0; i < nrow; i++ {
			// The writer keeps rec until the row group is flushed.
			rec := make([]interface{}, len(dat))
			for j, s := range dat {
				if s.IsNumeric() {
					if v, ok := s.Float(i); ok {
						rec[j] = v
					}
				} else if v, ok := s.String(i); ok {
					rec[j] = v
				}
			}
			if err := pw.Write(rec); err != nil {
				return ntot, err
			}
		}
		ntot += nrow
		log.Printf("Read %d records, %d total\n", nrow, ntot)
	}

	if pw == nil {
		return 0, fmt.Errorf("no records")
	}
	if err := pw.WriteStop(); err != nil {
		return ntot, fmt.Errorf("WriteStop error: %w", err)
	}

	return ntot, nil
}

func main() {

	dct := flag.String("dct", "", "Path to the Stata dictionary")
	outfile := flag.String("out", "", "Path of the parquet file to write")
	chunksize := flag.Int("chunk", 100000, "Records read per chunk")
	flag.Parse()

	if *dct == "" {
		io.WriteString(os.Stderr, "'dct' is a required argument\n")
		os.Exit(1)
	}

	if *outfile == "" {
		io.WriteString(os.Stderr, "'out' is a required argument\n")
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s -dct file.dct -out file.parquet file.dat[.gz]\n", os.Args[0])
		os.Exit(1)
	}

	dict, err := nsfg.OpenDictionary(*dct)
	if err != nil {
		log.Fatal(err)
	}

	f, err := nsfg.OpenData(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	fw, err := local.NewLocalFileWriter(*outfile)
	if err != nil {
		log.Fatalf("Can't create local file: %v", err)
	}

	n, err := convert(nsfg.NewFixedWidthReader(f, dict), fw, *chunksize)
	if cerr := fw.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}

	log.Printf("%s finished, %d records written to %s\n", flag.Arg(0), n, *outfile)
}
