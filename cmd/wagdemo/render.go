// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/visual"
)

// render paints the filled shapes of the tree rooted at root onto a
// grid of w by h terminal cells, one cell per unit.
func render(root *visual.MemNode, w, h int) string {
	grid := make([][]string, h)
	for y := range grid {
		grid[y] = make([]string, w)
	}
	root.Walk(func(n *visual.MemNode, depth int) {
		c, _, ok := n.Fill()
		if !ok {
			return
		}
		b := n.Bounds().Intersect(f32.Rect(0, 0, float32(w), float32(h)))
		if b.Empty() {
			return
		}
		hex := toHex(c)
		x0, x1 := clamp(b.Min.X, w), clamp(b.Max.X, w)
		y0, y1 := clamp(b.Min.Y, h), clamp(b.Max.Y, h)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y][x] = hex
			}
		}
	})
	styles := make(map[string]lipgloss.Style)
	var sb strings.Builder
	for y, row := range grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < len(row); {
			end := x + 1
			for end < len(row) && row[end] == row[x] {
				end++
			}
			run := strings.Repeat(" ", end-x)
			if row[x] == "" {
				sb.WriteString(run)
			} else {
				st, ok := styles[row[x]]
				if !ok {
					st = lipgloss.NewStyle().Background(lipgloss.Color(row[x]))
					styles[row[x]] = st
				}
				sb.WriteString(st.Render(run))
			}
			x = end
		}
	}
	return sb.String()
}

func clamp(v float32, n int) int {
	i := int(math.Round(float64(v)))
	return max(0, min(i, n))
}

func toHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
