// Command gen_boot_words scans boot.go's bootSource for `: NAME` headers
// and regenerates boot_words.go, a small table other tooling (docs, the
// dump command) can range over without re-parsing bootSource itself.
// Grounded on the teacher's scripts/gen_vm_expects.go: same
// goimports-piping pattern, same x/net/context + x/sync/errgroup plumbing.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		name := args[0]
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("failed to open %v: %v", name, err)
		}
		args = args[1:]
		in = f
	}

	if len(args) > 0 {
		name := args[0]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %v: %v", name, err)
		}
		out = f
	}
}

func main() {
	ctx := context.Background()
	parseFlags()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	ready := make(chan struct{})

	eg.Go(func() error {
		gofmt := exec.CommandContext(ctx, "goimports")
		fmtPipe, err := gofmt.StdinPipe()
		if err != nil {
			return err
		}

		defer out.Close()
		gofmt.Stdout = out
		gofmt.Stderr = os.Stderr

		out = fmtPipe

		close(ready)
		if err := gofmt.Run(); err != nil {
			return fmt.Errorf("gofmt run failed: %w", err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
		case <-ready:
		}

		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()

		return run(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

var defHeader = regexp.MustCompile(`^:\s+(\S+)`)

func run(ctx context.Context) error {
	var buf bytes.Buffer
	buf.Grow(512)
	buf.WriteString("package weft\n\n")
	buf.WriteString("// @generated from ")
	buf.WriteString(in.Name())
	buf.WriteString("\n\n")
	buf.WriteString("//go:generate go run scripts/gen_boot_words.go -- boot.go boot_words.go\n\n")
	buf.WriteString("var bootWordNames = []string{\n")

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if match := defHeader.FindSubmatch(bytes.TrimSpace(sc.Bytes())); len(match) > 0 {
			fmt.Fprintf(&buf, "\t%q,\n", match[1])
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	buf.WriteString("}\n")
	_, err := buf.WriteTo(out)
	return err
}
