package loader

import (
	"fmt"
	"strings"

	"github.com/mlowen/simcore/engine/vocab"
	"github.com/mlowen/simcore/sim"
)

// ValidationError collects all validation errors.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled defs for referential integrity.
func validate(defs *sim.Defs) error {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}
	if defs.Game.Start == "" {
		ve.Errors = append(ve.Errors, "Game.start is required")
	} else if _, ok := defs.Places[defs.Game.Start]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start place %q not found in defined places", defs.Game.Start))
	}

	for id, place := range defs.Places {
		if place.Name == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("place %q has no name", id))
		}
		for dir, target := range place.Exits {
			if _, ok := defs.Places[target]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"place %q exit %q points to undefined place %q", id, dir, target))
			}
		}
	}

	for id, person := range defs.People {
		if person.Name == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("person %q has no name", id))
		}
		if _, ok := defs.Places[person.Location]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"person %q is at undefined place %q", id, person.Location))
		}
	}

	for id, biz := range defs.Businesses {
		if biz.Name == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("business %q has no name", id))
		}
		if _, ok := defs.Places[biz.Location]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"business %q is at undefined place %q", id, biz.Location))
		}
		if biz.Price <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"business %q needs a positive price", id))
		}
	}

	// Intent definitions reuse the registry's own validation rules.
	probe := vocab.NewRegistry()
	for _, def := range defs.Intents {
		if err := probe.Register(def); err != nil {
			ve.Errors = append(ve.Errors, err.Error())
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
