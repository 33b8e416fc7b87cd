// Command k12sum prints KangarooTwelve digests of the named files, or of
// standard input when no files are given.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hopcrypt/k12"
)

func main() {
	log := slog.New(slog.Default().Handler())

	n := flag.Int("n", 32, "the number of output bytes")
	c := flag.String("c", "", "the customization string")
	flag.Parse()

	if *n < 0 {
		log.Error("output length must be non-negative", "n", *n)
		os.Exit(2)
	}

	names := flag.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}

	failed := false
	for _, name := range names {
		digest, err := hashFile(name, []byte(*c), *n)
		if err != nil {
			log.Error("failed to hash input", "name", name, "err", err)
			failed = true
			continue
		}
		fmt.Printf("%s  %s\n", hex.EncodeToString(digest), name)
	}
	if failed {
		os.Exit(1)
	}
}

func hashFile(name string, customization []byte, n int) ([]byte, error) {
	r := io.Reader(os.Stdin)
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	h := k12.NewCustom(customization)
	if _, err := io.Copy(h, r); err != nil {
		return nil, err
	}
	return h.Finalize(n), nil
}
