package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crateval-dev/crateval/internal/domain/entities"
	"github.com/crateval-dev/crateval/internal/domain/services"
	"github.com/crateval-dev/crateval/internal/domain/validation"
	"github.com/crateval-dev/crateval/internal/domain/values"
	"github.com/crateval-dev/crateval/internal/infrastructure/config"
	"github.com/crateval-dev/crateval/internal/infrastructure/engine"
	"github.com/crateval-dev/crateval/internal/infrastructure/procedures"
)

var (
	profilesPath       string
	profileID          string
	severityName       string
	severityOnly       bool
	noFailFast         bool
	disableInheritance bool
	inferenceName      string
	descriptorName     string
	format             string
	outFile            string
	noColor            bool
	noInteractive      bool
)

// validateCmd implements the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate <target-dir>",
	Short: "Validate a data package against a conformance profile",
	Long: `Validate the data package rooted at <target-dir> against a profile
from the profile directory. Without --profile the profile is detected
from the package descriptor's conformance declarations, prompting when
more than one candidate matches.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidateAction(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&profilesPath, "profiles-path", "p", "profiles", "Directory containing profile documents")
	validateCmd.Flags().StringVar(&profileID, "profile", "", "Profile identifier (default: detect from the descriptor)")
	validateCmd.Flags().StringVar(&severityName, "requirement-severity", values.SevRequired.String(), "Minimum severity to enforce: OPTIONAL, RECOMMENDED, REQUIRED")
	validateCmd.Flags().BoolVar(&severityOnly, "severity-only", false, "Run only checks at exactly the given severity")
	validateCmd.Flags().BoolVar(&noFailFast, "no-fail-fast", false, "Keep running after the first failing check")
	validateCmd.Flags().BoolVar(&disableInheritance, "disable-inheritance", false, "Validate against the selected profile only")
	validateCmd.Flags().StringVar(&inferenceName, "inference", "none", "Inference mode for shape evaluation: none, rdfs, owl, both")
	validateCmd.Flags().StringVar(&descriptorName, "descriptor-name", validation.DefaultDescriptorName, "Descriptor file name inside the target")
	validateCmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, yaml, sarif")
	validateCmd.Flags().StringVarP(&outFile, "output", "o", "", "Output file path (default: stdout)")
	validateCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	validateCmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Never prompt; fail when the profile is ambiguous")

	_ = viper.BindPFlag("profiles_path", validateCmd.Flags().Lookup("profiles-path"))
	_ = viper.BindPFlag("format", validateCmd.Flags().Lookup("format"))
}

func runValidateAction(ctx context.Context, targetPath string) error {
	threshold, err := values.ParseSeverity(severityName)
	if err != nil {
		return err
	}
	inference, err := values.ParseInferenceMode(inferenceName)
	if err != nil {
		return err
	}

	settings := validation.Settings{
		ProfilesPath:      profilesPath,
		ProfileIdentifier: profileID,
		Threshold:         threshold,
		ExactSeverityOnly: severityOnly,
		AbortOnFirst:      !noFailFast,
		InheritProfiles:   !disableInheritance,
		Inference:         inference,
		DescriptorName:    descriptorName,
	}

	vctx := validation.NewContext(targetPath, settings)
	if err := vctx.EnsureTargetAvailable(); err != nil {
		return err
	}
	descriptorSummary(vctx)

	store := config.NewStore(config.NewLoader(procedures.NewRegistry()))
	profiles, err := store.ListProfiles(ctx, profilesPath)
	if err != nil {
		return err
	}

	profile, err := selectProfile(vctx, profiles)
	if err != nil {
		return err
	}
	slog.Info("validating", "target", targetPath, "profile", profile.Identifier, "severity", threshold)

	sequence := []*entities.Profile{profile}
	if settings.InheritProfiles {
		sequence, err = services.NewInheritanceResolver(profiles).Resolve(profile)
		if err != nil {
			return err
		}
	}

	opts := []engine.OrchestratorOption{engine.WithLogger(slog.Default())}
	if format == "table" && outFile == "" {
		stats := services.ComputeStats(sequence, threshold, severityOnly)
		opts = append(opts, engine.WithSubscriber(newProgressSubscriber(os.Stderr, stats.TotalChecks)))
	}

	result, err := engine.NewOrchestrator(opts...).Execute(ctx, sequence, vctx)
	if err != nil {
		return err
	}

	report := validation.NewReport(result)
	report.Profile = profile.Identifier
	if err := writeReport(report, format, outFile, !noColor && stdoutIsTerminal()); err != nil {
		return err
	}

	if !result.Passed() {
		return errTargetInvalid
	}
	return nil
}

// selectProfile picks the profile to validate against: the one named
// on the command line, the single candidate declared by the
// descriptor, or an interactive choice when several match.
func selectProfile(vctx *validation.Context, profiles []*entities.Profile) (*entities.Profile, error) {
	if id := vctx.Settings().ProfileIdentifier; id != "" {
		for _, p := range profiles {
			if p.Identifier == id {
				return p, nil
			}
		}
		return nil, &entities.ProfileNotFoundError{Identifier: id, Path: vctx.Settings().ProfilesPath}
	}

	candidates := detectCandidates(vctx, profiles)
	if len(candidates) == 0 {
		candidates = profiles
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	if noInteractive || !stdoutIsTerminal() {
		return nil, fmt.Errorf("profile is ambiguous (%d candidates), pass --profile", len(candidates))
	}
	return promptProfile(candidates)
}

// detectCandidates matches the descriptor's conformance declarations
// against the known profile identifiers, and the root dataset's types
// against each profile's declared target types.
func detectCandidates(vctx *validation.Context, profiles []*entities.Profile) []*entities.Profile {
	doc, err := vctx.Descriptor()
	if err != nil {
		return nil
	}

	declared := conformsTo(doc)
	types := rootTypes(doc)
	if len(declared) == 0 && len(types) == 0 {
		return nil
	}

	var candidates []*entities.Profile
	for _, p := range profiles {
		if matchesProfile(p, declared, types) {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

func matchesProfile(p *entities.Profile, declared, types []string) bool {
	for _, id := range declared {
		if p.Identifier == id || filepath.Base(id) == p.Identifier {
			return true
		}
	}
	for _, target := range p.TargetTypes {
		for _, typ := range types {
			if target == typ {
				return true
			}
		}
	}
	return false
}

// conformsTo extracts conformance identifiers from the descriptor's
// root dataset entry.
func conformsTo(doc map[string]any) []string {
	graph, ok := doc["@graph"].([]any)
	if !ok {
		return nil
	}

	var ids []string
	for _, raw := range graph {
		entity, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		switch ref := entity["conformsTo"].(type) {
		case map[string]any:
			if id, ok := ref["@id"].(string); ok {
				ids = append(ids, id)
			}
		case []any:
			for _, item := range ref {
				if m, ok := item.(map[string]any); ok {
					if id, ok := m["@id"].(string); ok {
						ids = append(ids, id)
					}
				}
			}
		case string:
			ids = append(ids, ref)
		}
	}
	sort.Strings(ids)
	return ids
}

// rootTypes extracts the @type values of the root dataset entity, the
// one identified as "./".
func rootTypes(doc map[string]any) []string {
	graph, ok := doc["@graph"].([]any)
	if !ok {
		return nil
	}

	for _, raw := range graph {
		entity, ok := raw.(map[string]any)
		if !ok || entity["@id"] != "./" {
			continue
		}
		switch typ := entity["@type"].(type) {
		case string:
			return []string{typ}
		case []any:
			var types []string
			for _, item := range typ {
				if s, ok := item.(string); ok {
					types = append(types, s)
				}
			}
			return types
		}
	}
	return nil
}

func promptProfile(candidates []*entities.Profile) (*entities.Profile, error) {
	options := make([]huh.Option[string], 0, len(candidates))
	byID := make(map[string]*entities.Profile, len(candidates))
	for _, p := range candidates {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", p.Name, p.Identifier), p.Identifier))
		byID[p.Identifier] = p
	}

	var chosen string
	err := huh.NewSelect[string]().
		Title("Select the profile to validate against").
		Options(options...).
		Value(&chosen).
		Run()
	if err != nil {
		return nil, err
	}
	return byID[chosen], nil
}

// descriptorSummary is a debugging aid behind --verbose: it logs the
// top-level descriptor keys before the run starts.
func descriptorSummary(vctx *validation.Context) {
	doc, err := vctx.Descriptor()
	if err != nil {
		return
	}
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if data, err := json.Marshal(keys); err == nil {
		slog.Debug("descriptor keys", "keys", string(data))
	}
}
