// Package process provides the per-block audio processing context.
package process

// Status is returned by a processor after each block.
type Status int32

const (
	// StatusNormal means the block was processed and output is valid.
	StatusNormal Status = iota
	// StatusTail asks the host to keep calling for the given tail.
	StatusTail
	// StatusKeepAlive asks the host to keep processing even on silence.
	StatusKeepAlive
	// StatusError means the block could not be processed.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusTail:
		return "tail"
	case StatusKeepAlive:
		return "keep-alive"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// DefaultMaxParameterChanges is the event capacity used by NewContext when
// a non-positive capacity is requested.
const DefaultMaxParameterChanges = 128

// ParameterChange is a normalized parameter value scheduled at a sample
// offset within the current block.
type ParameterChange struct {
	ParamID      uint32
	Value        float64
	SampleOffset int
}

// Context provides a clean API for audio processing with zero allocations
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	// Pre-allocated, kept sorted by SampleOffset
	changes []ParameterChange
}

// NewContext creates a new process context with room for maxChanges
// parameter changes per block.
func NewContext(maxChanges int) *Context {
	if maxChanges <= 0 {
		maxChanges = DefaultMaxParameterChanges
	}
	return &Context{
		changes: make([]ParameterChange, 0, maxChanges),
	}
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	if len(c.Input) > 0 && len(c.Input[0]) > 0 {
		return len(c.Input[0])
	}
	if len(c.Output) > 0 && len(c.Output[0]) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// NumInputChannels returns the number of input channels
func (c *Context) NumInputChannels() int {
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	for ch := range c.Output {
		clear(c.Output[ch])
	}
}

// SetParameterAtOffset schedules a normalized parameter value at a sample
// offset within the current block. Changes are kept in offset order; changes
// sharing an offset keep the order they were added in. Negative offsets are
// treated as 0. It returns false without allocating when the context is full.
func (c *Context) SetParameterAtOffset(paramID uint32, value float64, sampleOffset int) bool {
	if len(c.changes) == cap(c.changes) {
		return false
	}
	if sampleOffset < 0 {
		sampleOffset = 0
	}

	c.changes = append(c.changes, ParameterChange{
		ParamID:      paramID,
		Value:        value,
		SampleOffset: sampleOffset,
	})

	// Insertion step; equal offsets stay behind earlier ones
	i := len(c.changes) - 1
	for i > 0 && c.changes[i-1].SampleOffset > sampleOffset {
		c.changes[i], c.changes[i-1] = c.changes[i-1], c.changes[i]
		i--
	}
	return true
}

// ParameterChanges returns the pending changes in offset order. The slice is
// only valid until the next call to ClearParameterChanges.
func (c *Context) ParameterChanges() []ParameterChange {
	return c.changes
}

// HasParameterChanges reports whether any change is pending.
func (c *Context) HasParameterChanges() bool {
	return len(c.changes) > 0
}

// ClearParameterChanges drops all pending changes, keeping the capacity.
func (c *Context) ClearParameterChanges() {
	c.changes = c.changes[:0]
}
