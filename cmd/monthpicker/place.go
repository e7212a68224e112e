package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/monthpicker"
)

// placeCmd runs the positioner for a given geometry.
var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Compute a popup placement",
	Long: `Compute where the picker popup goes for an anchor, popup size and viewport,
and print the placement as JSON.

The anchor is given in viewport coordinates; the placement is in document
coordinates (viewport plus scroll offset).

Example:
  monthpicker place --anchor 500,10,100,20 --popup 200,150 --viewport 800,600
  monthpicker place --anchor 0,0,100,595 --popup 100,40 --viewport 800,600 --scroll 120,0`,
	RunE: runPlace,
}

func init() {
	rootCmd.AddCommand(placeCmd)

	placeCmd.Flags().String("anchor", "", "anchor box as top,left,width,height (required)")
	placeCmd.Flags().String("popup", "0,0", "popup size as width,height")
	placeCmd.Flags().String("viewport", "", "viewport size as width,height (required)")
	placeCmd.Flags().String("scroll", "0,0", "scroll offset as top,left")
	_ = placeCmd.MarkFlagRequired("anchor")
	_ = placeCmd.MarkFlagRequired("viewport")
}

func runPlace(cmd *cobra.Command, args []string) error {
	var g monthpicker.Geometry

	anchor, err := floatsFlag(cmd, "anchor", 4)
	if err != nil {
		return err
	}
	g.Anchor = monthpicker.Rect{Top: anchor[0], Left: anchor[1], Width: anchor[2], Height: anchor[3]}

	popup, err := floatsFlag(cmd, "popup", 2)
	if err != nil {
		return err
	}
	g.Popup = monthpicker.Size{Width: popup[0], Height: popup[1]}

	viewport, err := floatsFlag(cmd, "viewport", 2)
	if err != nil {
		return err
	}
	g.Viewport = monthpicker.Size{Width: viewport[0], Height: viewport[1]}

	scroll, err := floatsFlag(cmd, "scroll", 2)
	if err != nil {
		return err
	}
	g.Scroll = monthpicker.Point{Top: scroll[0], Left: scroll[1]}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(monthpicker.ComputePosition(g))
}

// floatsFlag parses a comma-separated flag into exactly n numbers.
func floatsFlag(cmd *cobra.Command, name string, n int) ([]float64, error) {
	raw, _ := cmd.Flags().GetString(name)
	parts := strings.Split(raw, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("--%s: expected %d comma-separated numbers, got %q", name, n, raw)
	}

	out := make([]float64, n)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("--%s: invalid number %q", name, part)
		}
		out[i] = v
	}
	return out, nil
}
