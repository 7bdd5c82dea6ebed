package tossup

import "errors"

var (
	// ErrChoicesMismatch indicates that the number of party choices passed to
	// TallyVotes differs from the number of regions in the model.
	ErrChoicesMismatch = errors.New("number of choices must match number of regions")

	// ErrInvalidScenario indicates that a scenario failed validation.
	ErrInvalidScenario = errors.New("invalid scenario")

	ErrNoTrials = errors.New("trial count must be a positive integer")

	ErrUnknownParty = errors.New("unknown party")

	// ErrSimulationNotFound indicates that no stored simulation has the
	// requested ID.
	ErrSimulationNotFound = errors.New("simulation not found")
)
