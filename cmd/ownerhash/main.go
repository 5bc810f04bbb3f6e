// Command ownerhash reads an owner token from stdin and prints the bcrypt
// hash to put in OWNER_TOKEN_HASH.
//
//	printf '%s' "$TOKEN" | go run ./cmd/ownerhash
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/imrishuroy/go-mouse-storefront/internal/owner"
)

var errEmptyToken = errors.New("empty token on stdin")

func run(in io.Reader, out io.Writer) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return errEmptyToken
	}
	hash, err := owner.HashToken(token)
	if err != nil {
		return fmt.Errorf("hash token: %w", err)
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		log.Fatalf("ownerhash: %v", err)
	}
}
