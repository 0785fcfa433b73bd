package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH or a team's
// password_hash column.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/hash-password.go <password>\n")
		os.Exit(1)
	}

	password := os.Args[1]
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(hash))
}
