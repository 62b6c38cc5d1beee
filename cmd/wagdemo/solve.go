// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wagui/wag/errors"
	"github.com/wagui/wag/layout"
)

func newSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve target limit...",
		Short: "Print the sizes the layout solver assigns to cells",
		Long: `Solve divides target among cells. Each limit is written
ratio[:min[:max]], for example 1:250:250 for a cell pinned at 250.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := strconv.ParseFloat(args[0], 32)
			if err != nil {
				return errors.Wrap(errors.ErrCodeConfig, err, "target")
			}
			limits := make([]layout.CellLimit, len(args)-1)
			for i, a := range args[1:] {
				if limits[i], err = parseLimit(a); err != nil {
					return err
				}
			}
			sizes := layout.Adjust(limits, float32(target))
			log.FromContext(cmd.Context()).Debug("solved", "target", target, "cells", len(sizes))
			var sum float32
			for i, s := range sizes {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%.2f\n", i, s)
				sum += s
			}
			fmt.Fprintf(cmd.OutOrStdout(), "total\t%.2f\n", sum)
			return nil
		},
	}
}

// parseLimit parses ratio[:min[:max]].
func parseLimit(s string) (layout.CellLimit, error) {
	l := layout.DefaultLimit()
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return l, errors.New(errors.ErrCodeConfig, "limit %q has too many fields", s)
	}
	var vals [3]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return l, errors.Wrap(errors.ErrCodeConfig, err, "limit %q", s)
		}
		vals[i] = float32(v)
	}
	if !(vals[0] > 0) {
		return l, errors.New(errors.ErrCodeConfig, "limit %q: ratio must be positive", s)
	}
	l.Ratio = vals[0]
	if len(parts) > 1 {
		l = l.WithMin(vals[1])
	}
	if len(parts) > 2 {
		l = l.WithMax(vals[2])
	}
	return l, nil
}
