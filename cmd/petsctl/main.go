package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"pet-registry/internal/adapters/petsapi"

	"github.com/spf13/cobra"
)

var (
	apiFlag     string
	keyFlag     string
	timeoutFlag time.Duration
	rootCmd     = &cobra.Command{
		Use:           "petsctl",
		Short:         "CLI client for the pet registry REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8000", "Pet registry base URL")
	rootCmd.PersistentFlags().StringVarP(&keyFlag, "key", "k", os.Getenv("PETS_AUTH_KEY"), "Auth key (default $PETS_AUTH_KEY)")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 30*time.Second, "Request timeout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient() (*petsapi.Client, error) {
	return petsapi.New(apiFlag, keyFlag, timeoutFlag)
}

// requireKey: todos los comandos salvo "key" firman con auth-key.
func requireKey(*cobra.Command, []string) error {
	if keyFlag == "" {
		return fmt.Errorf("--key required")
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
