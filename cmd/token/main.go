package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"devevents/internal/adapters/auth"
)

func main() {
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "HMAC secret (defaults to $JWT_SECRET)")
	subject := flag.String("sub", "organizer", "Token subject")
	expiry := flag.Duration("exp", 7*24*time.Hour, "Token lifetime")
	outputJSON := flag.Bool("json", false, "Output as JSON")
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: a secret is required (-secret or JWT_SECRET)")
		os.Exit(1)
	}

	token, err := auth.NewJWTIssuer(*secret).Issue(*subject, []string{auth.RoleOrganizer}, *expiry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   int(expiry.Seconds()),
			"sub":          *subject,
			"role":         auth.RoleOrganizer,
		})
		return
	}

	fmt.Printf("Subject:  %s\n", *subject)
	fmt.Printf("Role:     %s\n", auth.RoleOrganizer)
	fmt.Printf("Expires:  %s\n", time.Now().Add(*expiry).Format(time.RFC3339))
	fmt.Println()
	fmt.Println(token)
}
