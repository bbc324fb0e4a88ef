/*
Copyright (c) 2024 Diagrid Inc.
Licensed under the MIT License.
*/

package engine

// State is a state of the scheduling loop.
type State int32

const (
	StateBuilding State = iota
	StateWaitingForEvent
	StateFiringEvent
	StateSleepingUntilMidnight
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "BUILDING"
	case StateWaitingForEvent:
		return "WAITING_FOR_EVENT"
	case StateFiringEvent:
		return "FIRING_EVENT"
	case StateSleepingUntilMidnight:
		return "SLEEPING_UNTIL_MIDNIGHT"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}
