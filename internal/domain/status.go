package domain

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Status represents where a round is in its lifecycle
type Status string

const (
	StatusFetching      Status = "FETCHING"       // Waiting on the word provider
	StatusActive        Status = "ACTIVE"         // Countdown running, input unlocked
	StatusWon           Status = "WON"            // Correct guess submitted
	StatusLostIncorrect Status = "LOST_INCORRECT" // Wrong guess submitted
	StatusLostTimeout   Status = "LOST_TIMEOUT"   // Countdown reached zero
	StatusRevealed      Status = "REVEALED"       // Player gave up and revealed the answer
)

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true once the round has been resolved
func (s Status) IsTerminal() bool {
	switch s {
	case StatusWon, StatusLostIncorrect, StatusLostTimeout, StatusRevealed:
		return true
	}
	return false
}

// Status machine events
const (
	eventActivate = "activate"
	eventWin      = "win"
	eventLose     = "lose"
	eventTimeout  = "timeout"
	eventReveal   = "reveal"
)

// newStatusMachine builds the per-round transition table. Terminal states
// have no outgoing events, a new round gets a fresh machine.
func newStatusMachine() *fsm.FSM {
	active := []string{string(StatusActive)}

	return fsm.NewFSM(
		string(StatusFetching),
		fsm.Events{
			{Name: eventActivate, Src: []string{string(StatusFetching)}, Dst: string(StatusActive)},
			{Name: eventWin, Src: active, Dst: string(StatusWon)},
			{Name: eventLose, Src: active, Dst: string(StatusLostIncorrect)},
			{Name: eventTimeout, Src: active, Dst: string(StatusLostTimeout)},
			{Name: eventReveal, Src: active, Dst: string(StatusRevealed)},
		},
		fsm.Callbacks{},
	)
}

// fire runs a status machine event, turning library errors into ErrInvalidTransition
func fire(machine *fsm.FSM, event string) (Status, error) {
	if err := machine.Event(context.Background(), event); err != nil {
		return Status(machine.Current()), fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event, machine.Current())
	}
	return Status(machine.Current()), nil
}
