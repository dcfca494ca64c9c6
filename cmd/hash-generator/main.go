// Command hash-generator prints a bcrypt digest for a password, for seeding
// accounts directly in the database.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

func main() {
	password := pflag.StringP("password", "p", "", "password to hash (read from stdin when empty)")
	cost := pflag.IntP("cost", "c", bcrypt.DefaultCost, "bcrypt cost factor")
	pflag.Parse()

	hash, err := generate(*password, *cost, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

// generate hashes password, or the first line of in when password is empty.
func generate(password string, cost int, in io.Reader) (string, error) {
	if password == "" {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if err := auth.ValidatePassword(password); err != nil {
		return "", err
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	return auth.NewBcryptHasher(cost).Hash(password)
}
