package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dealfinder/internal/extractor"
	"dealfinder/internal/service"
)

func init() {
	cmd := &cobra.Command{
		Use:   "prospects [mandate text]",
		Short: "Generate demo prospect cards for a mandate",
		Long:  "Parse mandate text locally and print deterministic synthetic prospect cards honoring its constraints.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runProspects,
	}

	cmd.Flags().IntP("count", "c", service.DefaultProspectCount, "Number of prospects to generate")

	RootCmd.AddCommand(cmd)
}

func runProspects(cmd *cobra.Command, args []string) {
	count, _ := cmd.Flags().GetInt("count")
	text := strings.Join(args, " ")

	pipeline := service.NewPipeline(nil, extractor.NewLocal(), nil, false)
	resp, err := pipeline.ParseLocal(text)
	if err != nil {
		exitErr("parse", err)
	}

	prospects := service.SynthProspects(resp.Record, count)

	if formatFlag == "text" {
		for _, p := range prospects {
			city := ""
			if p.City != nil {
				city = *p.City
			}
			fmt.Printf("%s  %s (%s)\n", p.ID, p.Title, city)
			fmt.Printf("    %s\n", p.MatchReason)
		}
		return
	}

	b, _ := json.MarshalIndent(prospects, "", "  ")
	fmt.Println(string(b))
}
