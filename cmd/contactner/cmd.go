package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/getzep/contactner/config"
	"github.com/getzep/contactner/internal"
)

var log = internal.GetLogger()

var (
	cfgFile     string
	showVersion bool
	dumpConfig  bool
	generateKey bool
	tokenTTL    string
)

var cmd = &cobra.Command{
	Use:   "contactner",
	Short: "contactner extracts contact details from PDF documents using named entity recognition",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var dumpJsonSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for contactner's configuration file",
	Example: "contactner json-schema > contactner_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(schema))
		return nil
	},
}

var extractCmd = &cobra.Command{
	Use:     "extract <file.pdf>",
	Short:   "Runs the extraction pipeline on a local PDF and prints the contact record",
	Example: "contactner extract resume.pdf",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error configuring contactner: %w", err)
		}
		config.SetLogLevel(cfg)

		appState, err := NewAppState(cfg)
		if err != nil {
			return err
		}

		return runExtract(context.Background(), appState, args[0], cmd.OutOrStdout())
	},
}

func init() {
	cmd.AddCommand(dumpJsonSchemaCmd)
	cmd.AddCommand(extractCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump config")
	cmd.PersistentFlags().
		BoolVarP(&generateKey, "generate-token", "g", false, "generate a new JWT token")
	cmd.Flags().
		StringVar(&tokenTTL, "token-ttl", "", "lifetime of a generated token, e.g. 720h (default never expires)")
}

// Execute executes the root cobra command.
func Execute() {
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
