// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchsave uploads pathfinding benchmark CSV files to a results
// server.
//
// Usage:
//
//	benchsave [-v] [-header file] [-server url] file...
//
// Each input file should be a CSV table with the columns
// Implementation, Graph_Size, Processes, Time_ms and Iterations.
// Files are validated locally before upload; malformed files are
// rejected.
//
// Benchsave uploads the input files to the specified server and
// prints a URL where they can be viewed. If the BENCH_UPLOAD_TOKEN
// environment variable is set, it is sent as an OAuth2 bearer token.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"

	"github.com/Architbh007/vm/benchcsv"
)

var (
	server  = flag.String("server", "https://benchmarks.example.com", "upload benchmarks to server at `url`")
	verbose = flag.Bool("v", false, "print verbose log messages")
	header  = flag.String("header", "", "insert `file` at the beginning of each uploaded file")
)

type uploadStatus struct {
	// UploadID is the upload ID assigned to the upload.
	UploadID string `json:"uploadid"`
	// FileIDs is the list of file IDs assigned to the files in the upload.
	FileIDs []string `json:"fileids"`
	// ViewURL is a server-supplied URL to view the results.
	ViewURL string `json:"viewurl"`
}

// newClient returns the HTTP client for talking to the results
// server: an OAuth2 client when BENCH_UPLOAD_TOKEN is set, the
// default client otherwise.
func newClient(ctx context.Context) *http.Client {
	token := os.Getenv("BENCH_UPLOAD_TOKEN")
	if token == "" {
		return http.DefaultClient
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

// checkFile reports an error if name is not a readable benchmark CSV
// file.
func checkFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	r := benchcsv.NewReader(f, name)
	n := 0
	for r.Scan() {
		switch rec := r.Result().(type) {
		case *benchcsv.Row:
			n++
		case *benchcsv.SyntaxError:
			return rec
		}
	}
	if err := r.Err(); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: no benchmark results", name)
	}
	return nil
}

// writeOneFile reads name and writes it to mpw.
func writeOneFile(mpw *multipart.Writer, name string, header []byte) error {
	w, err := mpw.CreateFormFile("file", filepath.Base(name))
	if err != nil {
		return err
	}
	if len(header) > 0 {
		if _, err := w.Write(header); err != nil {
			return err
		}
	}
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return err
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage of benchsave:
	benchsave [flags] file...
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("benchsave: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("no files to upload")
	}
	for _, name := range files {
		if err := checkFile(name); err != nil {
			log.Fatal(err)
		}
	}

	var headerData []byte
	if *header != "" {
		var err error
		headerData, err = os.ReadFile(*header)
		if err != nil {
			log.Fatal(err)
		}
		headerData = append(bytes.TrimRight(headerData, "\n"), '\n', '\n')
	}

	hc := newClient(context.Background())

	pr, pw := io.Pipe()
	mpw := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		defer mpw.Close()

		for _, name := range files {
			if err := writeOneFile(mpw, name, headerData); err != nil {
				log.Print(err)
				// Writing the 'abort' field will cause the server to
				// send back an error response.
				mpw.WriteField("abort", "1")
				return
			}
		}

		mpw.WriteField("commit", "1")
	}()

	start := time.Now()

	resp, err := hc.Post(*server+"/upload", mpw.FormDataContentType(), pr)
	if err != nil {
		log.Fatalf("upload failed: %v\n", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		log.Printf("upload failed: %v\n", resp.Status)
		io.Copy(os.Stderr, resp.Body)
		os.Exit(1)
	}

	status := &uploadStatus{}
	if err := json.NewDecoder(resp.Body).Decode(status); err != nil {
		log.Fatalf("cannot parse upload response: %v\n", err)
	}

	if *verbose {
		s := ""
		if len(files) != 1 {
			s = "s"
		}
		log.Printf("%d file%s uploaded in %.2f seconds.\n", len(files), s, time.Since(start).Seconds())
	}
	if status.ViewURL != "" {
		fmt.Printf("%s\n", status.ViewURL)
	}
}
