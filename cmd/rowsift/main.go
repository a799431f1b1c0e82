package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-mmap/mmap"
	"github.com/rowsift/rowsift"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	if err := LoadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "rowsift: %v\n", err)
		os.Exit(1)
	}

	dataFile := viper.GetString("data_file")
	if dataFile == "" {
		fmt.Fprintln(os.Stderr, "rowsift: no record file given; use --data-file")
		os.Exit(1)
	}

	objects, err := loadRecords(dataFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rowsift: %v\n", err)
		os.Exit(1)
	}

	if viper.GetBool("fields") {
		printFields(objects)
		return
	}

	engine := rowsift.NewEngine(objects, viper.GetString("primary_key_field"))

	// A query given as arguments runs once; otherwise queries are read
	// line by line from stdin.
	if args := pflag.Args(); len(args) > 0 {
		if err := runQuery(engine, strings.Join(args, " ")); err != nil {
			fmt.Fprintf(os.Stderr, "rowsift: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := runQuery(engine, scanner.Text()); err != nil {
			fmt.Fprintf(os.Stderr, "rowsift: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "rowsift: reading stdin: %v\n", err)
		os.Exit(1)
	}
}

func runQuery(engine *rowsift.Engine, queryText string) error {
	keys, err := engine.FilterObjects(queryText)
	if err != nil {
		return err
	}
	out, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// loadRecords memory-maps the record file read-only and decodes it as a
// JSON array of records.
func loadRecords(name string) ([]rowsift.Record, error) {
	f, err := mmap.OpenFile(name, mmap.Read)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %v", name, err)
	}
	defer f.Close()

	data := make([]byte, f.Len())
	if len(data) > 0 {
		if _, err := f.ReadAt(data, 0); err != nil {
			return nil, fmt.Errorf("cannot read %s: %v", name, err)
		}
	}

	var objects []rowsift.Record
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %v", name, err)
	}
	return objects, nil
}

func printFields(objects []rowsift.Record) {
	fields := rowsift.InferFields(objects)
	out, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "rowsift: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
