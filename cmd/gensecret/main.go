// Generate a random secret suitable for the SECRET_KEY setting.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	size := pflag.IntP("bytes", "b", 32, "Secret length in bytes before hex encoding")
	pflag.Parse()

	if *size < 16 {
		fmt.Fprintln(os.Stderr, "refusing to generate a secret shorter than 16 bytes")
		os.Exit(1)
	}

	b := make([]byte, *size)
	if _, err := rand.Read(b); err != nil {
		fmt.Fprintf(os.Stderr, "error while generating secret key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hex.EncodeToString(b))
}
