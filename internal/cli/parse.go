package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dealfinder/internal/extractor"
	"dealfinder/internal/model"
	"dealfinder/internal/service"
)

func init() {
	cmd := &cobra.Command{
		Use:   "parse [mandate text]",
		Short: "Parse mandate text into a structured record",
		Long:  "Run the local parse pipeline on mandate text and print the canonical record, coverage score, and refine plan.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runParse,
	}

	RootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) {
	text := strings.Join(args, " ")

	pipeline := service.NewPipeline(nil, extractor.NewLocal(), nil, false)
	resp, err := pipeline.ParseLocal(text)
	if err != nil {
		exitErr("parse", err)
	}

	if formatFlag == "text" {
		printText(resp)
		return
	}

	b, _ := json.MarshalIndent(resp, "", "  ")
	fmt.Println(string(b))
}

func printText(resp *model.ParseResponse) {
	r := resp.Record
	fmt.Printf("intent:    %s\n", r.Intent)
	fmt.Printf("role:      %s\n", r.Role)
	if r.AssetType != nil {
		fmt.Printf("asset:     %s\n", *r.AssetType)
	}
	if !r.Market.Empty() {
		fmt.Printf("market:    %s\n", formatMarket(r.Market))
	}
	if !r.SizeSF.Empty() {
		fmt.Printf("size sf:   %s\n", formatRange(r.SizeSF))
	}
	if !r.Units.Empty() {
		fmt.Printf("units:     %s\n", formatRange(r.Units))
	}
	if !r.Budget.Empty() {
		fmt.Printf("budget:    %s\n", formatRange(r.Budget))
	}
	if !r.CapRate.Empty() {
		fmt.Printf("cap rate:  %s\n", formatRange(r.CapRate))
	}
	fmt.Printf("coverage:  %d\n", resp.Coverage)
	if resp.RefinePlan != nil {
		fmt.Println("refine:")
		for _, item := range resp.RefinePlan.Items {
			fmt.Printf("  - %s: %s\n", item.Key, item.Message)
		}
	}
}

func formatMarket(m *model.Market) string {
	parts := []string{}
	if m.City != nil {
		parts = append(parts, *m.City)
	}
	if m.State != nil {
		parts = append(parts, *m.State)
	}
	return strings.Join(parts, ", ")
}

func formatRange(r *model.Range) string {
	switch {
	case r.Min != nil && r.Max != nil:
		return fmt.Sprintf("%.0f-%.0f", *r.Min, *r.Max)
	case r.Min != nil:
		return fmt.Sprintf(">= %.0f", *r.Min)
	default:
		return fmt.Sprintf("<= %.0f", *r.Max)
	}
}
