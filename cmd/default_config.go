package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/boardsim/sim/board"
	"github.com/inference-sim/boardsim/sim/store"
)

// Defaults is the board and store section of a scenario file, filled with
// the built-in values.
type Defaults struct {
	Board board.Config `yaml:"board"`
	Store store.Config `yaml:"store"`
}

var defaultConfigCmd = &cobra.Command{
	Use:   "default-config",
	Short: "Print the default board and store configuration as scenario YAML",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeDefaults(cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Failed to write defaults: %v", err)
		}
	},
}

func writeDefaults(w io.Writer) error {
	data, err := yaml.Marshal(Defaults{Board: board.DefaultConfig(), Store: store.DefaultConfig()})
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}
	_, err = w.Write(data)
	return err
}
