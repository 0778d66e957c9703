// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package governance

import (
	"errors"
	"fmt"
	"time"
)

// EventName is one of the four stages of a governance cycle
type EventName string

const (
	TemperatureCheck EventName = "Temperature Check"
	SnapshotVote     EventName = "Snapshot Vote"
	Execution        EventName = "Execution"
	Delay            EventName = "Delay"

	// StageCount is the number of stages in one cycle
	StageCount = 4
)

// EventNames lists the stages in the order they happen within a cycle
var EventNames = [StageCount]EventName{TemperatureCheck, SnapshotVote, Execution, Delay}

var (
	ErrUnknownEvent        = errors.New("unknown governance event")
	ErrInvalidStageLengths = errors.New("cycle stage lengths must have exactly 4 non-negative entries")
)

// DateEvent is the governance stage a space currently is in
type DateEvent struct {
	Title EventName `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Schedule is the wall-clock window of one cycle
type Schedule struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ScheduledEvent is the start of a stage
type ScheduledEvent struct {
	Date  time.Time `json:"date"`
	Title EventName `json:"title"`
}

// Index returns the position of [name] within a cycle
func Index(name EventName) (int, error) {
	for i, n := range EventNames {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// CycleLength sums [stageLengths] in days
func CycleLength(stageLengths []int) int {
	total := 0
	for _, l := range stageLengths {
		total += l
	}
	return total
}

func verifyStageLengths(stageLengths []int) error {
	if len(stageLengths) != StageCount {
		return ErrInvalidStageLengths
	}
	for _, l := range stageLengths {
		if l < 0 {
			return ErrInvalidStageLengths
		}
	}
	return nil
}

// ScheduleOfCycle returns the window of the cycle [cycleDelta] cycles away
// from the one [current] belongs to. A delta of 0 is the current cycle.
func ScheduleOfCycle(stageLengths []int, cycleDelta int, current DateEvent) (Schedule, error) {
	if err := verifyStageLengths(stageLengths); err != nil {
		return Schedule{}, err
	}
	currentIndex, err := Index(current.Title)
	if err != nil {
		return Schedule{}, err
	}

	startOfCycle := current.Start.AddDate(0, 0, -CycleLength(stageLengths[:currentIndex]))
	cycleLength := CycleLength(stageLengths)
	return Schedule{
		Start: startOfCycle.AddDate(0, 0, cycleLength*cycleDelta),
		End:   startOfCycle.AddDate(0, 0, cycleLength*cycleDelta+cycleLength),
	}, nil
}

// RecentSchedules returns the previous, the current and the next stage
// around [current].
func RecentSchedules(stageLengths []int, current DateEvent) ([3]ScheduledEvent, error) {
	if err := verifyStageLengths(stageLengths); err != nil {
		return [3]ScheduledEvent{}, err
	}
	currentIndex, err := Index(current.Title)
	if err != nil {
		return [3]ScheduledEvent{}, err
	}

	previousIndex := (currentIndex - 1 + StageCount) % StageCount
	nextIndex := (currentIndex + 1) % StageCount
	return [3]ScheduledEvent{
		{
			Date:  current.Start.AddDate(0, 0, -stageLengths[previousIndex]),
			Title: EventNames[previousIndex],
		},
		{
			Date:  current.Start,
			Title: current.Title,
		},
		{
			// the next stage starts once the current one has run its length
			Date:  current.Start.AddDate(0, 0, stageLengths[currentIndex]),
			Title: EventNames[nextIndex],
		},
	}, nil
}
