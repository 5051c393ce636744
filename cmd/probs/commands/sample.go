/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sample.go
Description: Sample command implementation for probs. Draws independent samples
from a loaded joint distribution using inverse transform sampling and prints
one assignment per line.
*/

package commands

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/probs/pkg/stats"
)

// RunSample draws samples from a loaded distribution
func RunSample(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := SetupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	s, err := loadSystem(args[0])
	if err != nil {
		return err
	}

	n := viper.GetInt("sample.n")
	if n <= 0 {
		return fmt.Errorf("sample count must be positive, got %d", n)
	}

	var rng *rand.Rand
	if seed := viper.GetInt64("sample.seed"); seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	start := time.Now()
	samples, err := stats.Sample(s, n, rng)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"count":    len(samples),
		"duration": time.Since(start),
	}).Info("Samples drawn")

	vars := s.Variables()
	for _, a := range samples {
		labels := make([]string, len(a))
		for i, si := range a {
			labels[i] = vars[i].States[si]
		}
		fmt.Println(strings.Join(labels, " "))
	}

	return nil
}
