package agent

import "shop-agent/internal/service/llm"

// State is the agent loop's position in one request's lifecycle
type State int

const (
	StateBuildingContext State = iota
	StateAwaitingModel
	StateDispatchingTools
	StateDone
)

func (s State) String() string {
	switch s {
	case StateBuildingContext:
		return "building_context"
	case StateAwaitingModel:
		return "awaiting_model"
	case StateDispatchingTools:
		return "dispatching_tools"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// advance is the pure transition function of the loop. The completion is
// only consulted when leaving StateAwaitingModel; every other transition
// is unconditional.
func advance(state State, completion *llm.Completion) State {
	switch state {
	case StateBuildingContext:
		return StateAwaitingModel
	case StateAwaitingModel:
		if completion != nil && completion.HasToolCalls() {
			return StateDispatchingTools
		}
		return StateDone
	case StateDispatchingTools:
		return StateAwaitingModel
	}
	return StateDone
}
