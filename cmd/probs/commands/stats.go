/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stats.go
Description: Stats command implementation for probs. Computes entropy,
conditional entropy, mutual information, odds ratio, and relative risk for
variables of a loaded distribution.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/probs/pkg/core"
	"github.com/kleascm/probs/pkg/stats"
)

// RunStats computes information-theoretic and association measures
func RunStats(cmd *cobra.Command, args []string) error {
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

	f := newFormatter()
	base := viper.GetFloat64("stats.base")

	entropyVars, err := resolveAll(s, viper.GetStringSlice("stats.entropy"))
	if err != nil {
		return err
	}
	givenVars, err := resolveAll(s, viper.GetStringSlice("stats.entropy_given"))
	if err != nil {
		return err
	}

	if len(givenVars) > 0 {
		h, err := stats.ConditionalEntropy(s, entropyVars, givenVars, base)
		if err != nil {
			return err
		}
		fmt.Printf("H(target | given) = %s\n", f.Prob(h))
	} else {
		h, err := stats.Entropy(s, entropyVars, base)
		if err != nil {
			return err
		}
		fmt.Printf("H = %s\n", f.Prob(h))
	}

	if pair := viper.GetString("stats.mutual"); pair != "" {
		x, y, err := resolvePair(s, pair)
		if err != nil {
			return err
		}
		mi, err := stats.MutualInformation(s, x, y, base)
		if err != nil {
			return err
		}
		fmt.Printf("I(%s; %s) = %s\n", name(s, x), name(s, y), f.Prob(mi))
	}

	if pair := viper.GetString("stats.odds_ratio"); pair != "" {
		exposure, outcome, err := resolvePair(s, pair)
		if err != nil {
			return err
		}
		or, defined, err := stats.OddsRatio(s, exposure, outcome)
		if err != nil {
			return err
		}
		if !defined {
			fmt.Printf("OR(%s, %s) = undefined\n", name(s, exposure), name(s, outcome))
		} else {
			fmt.Printf("OR(%s, %s) = %s\n", name(s, exposure), name(s, outcome), f.Prob(or))
		}
	}

	if pair := viper.GetString("stats.relative_risk"); pair != "" {
		exposure, outcome, err := resolvePair(s, pair)
		if err != nil {
			return err
		}
		rr, defined, err := stats.RelativeRisk(s, exposure, outcome)
		if err != nil {
			return err
		}
		if !defined {
			fmt.Printf("RR(%s, %s) = undefined\n", name(s, exposure), name(s, outcome))
		} else {
			fmt.Printf("RR(%s, %s) = %s\n", name(s, exposure), name(s, outcome), f.Prob(rr))
		}
	}

	return nil
}

// resolveAll maps a list of variable names to indices; an empty list stays nil
func resolveAll(s *core.System, names []string) ([]int, error) {
	if len(names) == 0 {
		return nil, nil
	}
	indices := make([]int, len(names))
	for i, n := range names {
		idx, err := resolveVariable(s, n)
		if err != nil {
			return nil, err
		}
		indices[i] = idx
	}
	return indices, nil
}

func name(s *core.System, i int) string {
	return s.VariableNames()[i]
}
