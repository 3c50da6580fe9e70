package procedures

import (
	"fmt"
	"os"

	"github.com/crateval-dev/crateval/internal/domain/entities"
)

// builtins returns the descriptor procedures every registry starts
// with. They cover the baseline descriptor conformance checks: the
// document exists, is non-empty, parses as JSON, declares a context,
// and every graph entity carries an identifier and a type.
func builtins() map[string]entities.ProcedureFunc {
	return map[string]entities.ProcedureFunc{
		"descriptor_exists":      descriptorExists,
		"descriptor_not_empty":   descriptorNotEmpty,
		"descriptor_valid_json":  descriptorValidJSON,
		"descriptor_has_context": descriptorHasContext,
		"entities_have_id":       entitiesHaveID,
		"entities_have_type":     entitiesHaveType,
	}
}

func descriptorExists(target entities.ValidationTarget, check entities.Check) bool {
	if _, err := os.Stat(target.DescriptorPath()); err != nil {
		target.AddError(fmt.Sprintf("descriptor %q is not present", target.RelDescriptorPath()), check)
		return false
	}
	return true
}

func descriptorNotEmpty(target entities.ValidationTarget, check entities.Check) bool {
	info, err := os.Stat(target.DescriptorPath())
	if err != nil {
		target.AddError(fmt.Sprintf("descriptor %q is not present", target.RelDescriptorPath()), check)
		return false
	}
	if info.Size() == 0 {
		target.AddError(fmt.Sprintf("descriptor %q is empty", target.RelDescriptorPath()), check)
		return false
	}
	return true
}

func descriptorValidJSON(target entities.ValidationTarget, check entities.Check) bool {
	if _, err := target.Descriptor(); err != nil {
		target.AddError(fmt.Sprintf("descriptor %q is not in the correct format", target.RelDescriptorPath()), check)
		return false
	}
	return true
}

func descriptorHasContext(target entities.ValidationTarget, check entities.Check) bool {
	doc, err := target.Descriptor()
	if err != nil {
		target.AddError(fmt.Sprintf("descriptor %q is not in the correct format", target.RelDescriptorPath()), check)
		return false
	}
	if _, ok := doc["@context"]; !ok {
		target.AddError(fmt.Sprintf("descriptor %q does not declare a context", target.RelDescriptorPath()), check)
		return false
	}
	return true
}

func entitiesHaveID(target entities.ValidationTarget, check entities.Check) bool {
	return graphEntitiesHave(target, check, "@id")
}

func entitiesHaveType(target entities.ValidationTarget, check entities.Check) bool {
	return graphEntitiesHave(target, check, "@type")
}

// graphEntitiesHave verifies that every entity in the descriptor's
// @graph carries the given attribute. The first offender fails the
// procedure; entities without a name are reported by index.
func graphEntitiesHave(target entities.ValidationTarget, check entities.Check, attribute string) bool {
	doc, err := target.Descriptor()
	if err != nil {
		target.AddError(fmt.Sprintf("descriptor %q is not in the correct format", target.RelDescriptorPath()), check)
		return false
	}

	graph, ok := doc["@graph"].([]any)
	if !ok {
		target.AddError(fmt.Sprintf("descriptor %q does not declare a graph", target.RelDescriptorPath()), check)
		return false
	}

	for i, raw := range graph {
		entity, ok := raw.(map[string]any)
		if !ok {
			target.AddError(fmt.Sprintf("entity %d of descriptor %q is not an object", i, target.RelDescriptorPath()), check)
			return false
		}
		if _, ok := entity[attribute]; !ok {
			target.AddError(fmt.Sprintf("entity %q of descriptor %q does not contain the %s attribute",
				entityLabel(entity, i), target.RelDescriptorPath(), attribute), check)
			return false
		}
	}
	return true
}

func entityLabel(entity map[string]any, index int) string {
	if name, ok := entity["name"].(string); ok && name != "" {
		return name
	}
	if id, ok := entity["@id"].(string); ok && id != "" {
		return id
	}
	return fmt.Sprintf("#%d", index)
}
