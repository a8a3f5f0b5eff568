// Package bus provides audio bus layouts, negotiation and configuration.
package bus

// Layout is a channel layout requested by a host during bus negotiation.
type Layout struct {
	NumInputChannels  int
	NumOutputChannels int
}

// Stereo is the default two-in two-out layout.
var Stereo = Layout{NumInputChannels: 2, NumOutputChannels: 2}

// Mono is the one-in one-out layout.
var Mono = Layout{NumInputChannels: 1, NumOutputChannels: 1}

// Accepts reports whether a layout can be processed: any symmetrical layout
// with at least one channel. Mono-to-stereo, zero-channel and other
// asymmetric layouts are rejected.
func Accepts(l Layout) bool {
	return l.NumInputChannels == l.NumOutputChannels && l.NumInputChannels > 0
}

// Direction represents the bus direction
type Direction int32

const (
	DirectionInput  Direction = 0
	DirectionOutput Direction = 1
)

func (d Direction) String() string {
	switch d {
	case DirectionInput:
		return "input"
	case DirectionOutput:
		return "output"
	}
	return "unknown"
}

// Info contains bus configuration
type Info struct {
	Direction    Direction
	ChannelCount int32
	Name         string
	IsActive     bool
}

// Configuration describes the main audio buses of a processor
type Configuration struct {
	audioBuses []Info
}

// GetBusCount returns the number of buses in a direction
func (c *Configuration) GetBusCount(direction Direction) int32 {
	var n int32
	for i := range c.audioBuses {
		if c.audioBuses[i].Direction == direction {
			n++
		}
	}
	return n
}

// GetBusInfo returns the index-th bus of a direction, or nil.
func (c *Configuration) GetBusInfo(direction Direction, index int32) *Info {
	for i := range c.audioBuses {
		if c.audioBuses[i].Direction != direction {
			continue
		}
		if index == 0 {
			return &c.audioBuses[i]
		}
		index--
	}
	return nil
}

// Layout returns the channel layout of the first active input and output
// buses. A missing bus counts as zero channels.
func (c *Configuration) Layout() Layout {
	var l Layout
	if in := c.firstActive(DirectionInput); in != nil {
		l.NumInputChannels = int(in.ChannelCount)
	}
	if out := c.firstActive(DirectionOutput); out != nil {
		l.NumOutputChannels = int(out.ChannelCount)
	}
	return l
}

func (c *Configuration) firstActive(direction Direction) *Info {
	for i := range c.audioBuses {
		if c.audioBuses[i].Direction == direction && c.audioBuses[i].IsActive {
			return &c.audioBuses[i]
		}
	}
	return nil
}
