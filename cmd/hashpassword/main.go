// Command hashpassword prints a bcrypt hash for admin_password_hash.
//
//	echo -n 'secret' | hashpassword
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dalemusser/researchhub/internal/app/system/authutil"
)

func main() {
	in := bufio.NewReader(os.Stdin)
	pw, err := in.ReadString('\n')
	if err != nil && pw == "" {
		fmt.Fprintln(os.Stderr, "read password from stdin:", err)
		os.Exit(1)
	}
	pw = strings.TrimRight(pw, "\r\n")

	if err := authutil.ValidatePassword(pw); err != nil {
		fmt.Fprintf(os.Stderr, "%v (%s)\n", err, authutil.PasswordRules())
		os.Exit(1)
	}
	hash, err := authutil.HashPassword(pw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
