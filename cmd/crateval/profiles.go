package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crateval-dev/crateval/internal/domain/entities"
	"github.com/crateval-dev/crateval/internal/domain/services"
	"github.com/crateval-dev/crateval/internal/domain/values"
	"github.com/crateval-dev/crateval/internal/infrastructure/config"
	"github.com/crateval-dev/crateval/internal/infrastructure/procedures"
)

// profilesCmd groups the profile inspection commands.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Inspect the available conformance profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the profiles in the profile directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store := config.NewStore(config.NewLoader(procedures.NewRegistry()))
		profiles, err := store.ListProfiles(cmd.Context(), profilesPath)
		if err != nil {
			return err
		}

		for _, p := range profiles {
			extends := ""
			if len(p.Extends) > 0 {
				extends = " extends " + strings.Join(p.Extends, ", ")
			}
			fmt.Printf("%-24s %-8s %s%s\n", p.Identifier, p.Version, p.Name, extends)
		}
		return nil
	},
}

var profilesDescribeCmd = &cobra.Command{
	Use:   "describe <identifier>",
	Short: "Show a profile's requirements and check counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.NewStore(config.NewLoader(procedures.NewRegistry()))
		profiles, err := store.ListProfiles(cmd.Context(), profilesPath)
		if err != nil {
			return err
		}

		var profile *entities.Profile
		for _, p := range profiles {
			if p.Identifier == args[0] {
				profile = p
				break
			}
		}
		if profile == nil {
			return &entities.ProfileNotFoundError{Identifier: args[0], Path: profilesPath}
		}

		sequence := []*entities.Profile{profile}
		if !disableInheritance {
			sequence, err = services.NewInheritanceResolver(profiles).Resolve(profile)
			if err != nil {
				return err
			}
		}

		fmt.Printf("%s (%s)\n", profile.Name, profile.Identifier)
		if profile.Description != "" {
			fmt.Println(profile.Description)
		}
		if len(sequence) > 1 {
			chain := make([]string, 0, len(sequence))
			for _, p := range sequence {
				chain = append(chain, p.Identifier)
			}
			fmt.Printf("Inheritance: %s\n", strings.Join(chain, " -> "))
		}
		fmt.Println()

		for _, p := range sequence {
			for _, req := range p.Requirements() {
				if req.Hidden {
					continue
				}
				fmt.Printf("%-12s %-28s %s (%d checks)\n",
					req.Severity(), req.Identifier, req.Name, req.CheckCount())
			}
		}

		stats := services.ComputeStats(sequence, values.SevOptional, false)
		fmt.Printf("\n%d requirement(s), %d check(s)", stats.TotalRequirements, stats.TotalChecks)
		for _, severity := range []values.Severity{values.SevRequired, values.SevRecommended, values.SevOptional} {
			if n := stats.RequirementsBySeverity[severity]; n > 0 {
				fmt.Printf(" %s=%d", severity, n)
			}
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesDescribeCmd)

	profilesCmd.PersistentFlags().StringVarP(&profilesPath, "profiles-path", "p", "profiles", "Directory containing profile documents")
	profilesDescribeCmd.Flags().BoolVar(&disableInheritance, "disable-inheritance", false, "Describe the profile without its ancestors")
}
