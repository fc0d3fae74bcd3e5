// idparse is a bench tool for exercising the credential parser: feed it a raw
// barcode payload (argument, file, or stdin) and it prints the extracted
// record and evaluated age. Useful when a store reports a license that scans
// on the register but fails in the sidecar.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"agegate/internal/credential"
	domain "agegate/pkg/domain"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		manual     bool
		jsonOutput bool
		minimumAge int
	)

	cmd := &cobra.Command{
		Use:   "idparse [payload]",
		Short: "Parse an ID barcode payload and evaluate the customer's age",
		Long: `Parse a raw credential payload the way the agegate daemon would.

The payload is taken from the first argument, or read from stdin when no
argument is given. With --manual the input is treated as a typed eight-digit
YYYYMMDD birth date instead of a scanned barcode.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			parser := credential.NewParser()
			now := time.Now()

			var cred *credential.Credential
			if manual {
				cred, err = parser.ParseManualEntry(payload)
			} else {
				cred, err = parser.Parse(payload, now)
			}
			if err != nil {
				return err
			}

			age := domain.Age(cred.DateOfBirth, now)
			return printResult(cmd.OutOrStdout(), cred, age, minimumAge, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&manual, "manual", false, "treat input as a typed YYYYMMDD birth date")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().IntVar(&minimumAge, "minimum-age", 21, "minimum age to evaluate against")

	return cmd
}

func readPayload(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading payload from stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no payload given")
	}
	return string(data), nil
}

func printResult(out io.Writer, cred *credential.Credential, age, minimumAge int, asJSON bool) error {
	approved := age >= minimumAge

	if asJSON {
		return json.NewEncoder(out).Encode(map[string]any{
			"name":          cred.DisplayName(),
			"date_of_birth": cred.DateOfBirth.Format("2006-01-02"),
			"age":           age,
			"minimum_age":   minimumAge,
			"approved":      approved,
		})
	}

	if name := cred.DisplayName(); name != "" {
		fmt.Fprintf(out, "Name:          %s\n", name)
	}
	if cred.LicenseNumber != "" {
		fmt.Fprintf(out, "License:       %s\n", cred.LicenseNumber)
	}
	fmt.Fprintf(out, "Date of birth: %s\n", cred.DateOfBirth.Format("2006-01-02"))
	fmt.Fprintf(out, "Age:           %d\n", age)
	if approved {
		fmt.Fprintf(out, "Result:        OF AGE (minimum %d)\n", minimumAge)
	} else {
		fmt.Fprintf(out, "Result:        UNDER AGE (minimum %d)\n", minimumAge)
	}
	return nil
}
