package process

import (
	"testing"
)

func TestSetParameterAtOffsetOrdering(t *testing.T) {
	ctx := NewContext(8)

	ctx.SetParameterAtOffset(1, 0.5, 200)
	ctx.SetParameterAtOffset(0, 0.1, 100)
	ctx.SetParameterAtOffset(1, 0.7, 100)
	ctx.SetParameterAtOffset(0, 0.9, -5)
	ctx.SetParameterAtOffset(0, 0.3, 600)

	changes := ctx.ParameterChanges()
	want := []ParameterChange{
		{ParamID: 0, Value: 0.9, SampleOffset: 0},
		{ParamID: 0, Value: 0.1, SampleOffset: 100},
		{ParamID: 1, Value: 0.7, SampleOffset: 100},
		{ParamID: 1, Value: 0.5, SampleOffset: 200},
		{ParamID: 0, Value: 0.3, SampleOffset: 600},
	}

	if len(changes) != len(want) {
		t.Fatalf("Expected %d changes, got %d", len(want), len(changes))
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %+v, want %+v", i, changes[i], want[i])
		}
	}

	if !ctx.HasParameterChanges() {
		t.Error("Expected pending changes")
	}
	ctx.ClearParameterChanges()
	if ctx.HasParameterChanges() {
		t.Error("Expected no changes after clear")
	}
}

func TestSetParameterAtOffsetCapacity(t *testing.T) {
	ctx := NewContext(2)

	if !ctx.SetParameterAtOffset(0, 0, 0) || !ctx.SetParameterAtOffset(0, 1, 1) {
		t.Fatal("Expected first two changes to be accepted")
	}
	if ctx.SetParameterAtOffset(0, 0.5, 2) {
		t.Error("Expected change to be rejected when full")
	}

	allocs := testing.AllocsPerRun(100, func() {
		ctx.ClearParameterChanges()
		ctx.SetParameterAtOffset(1, 0.25, 10)
		ctx.SetParameterAtOffset(0, 0.75, 3)
	})
	if allocs != 0 {
		t.Errorf("SetParameterAtOffset allocated %.1f times per run", allocs)
	}
}

func TestDefaultCapacity(t *testing.T) {
	ctx := NewContext(0)
	if got := cap(ctx.ParameterChanges()); got != DefaultMaxParameterChanges {
		t.Errorf("capacity = %d, want %d", got, DefaultMaxParameterChanges)
	}
}

func TestBufferHelpers(t *testing.T) {
	ctx := NewContext(1)
	ctx.Input = [][]float32{{1, 2, 3}, {4, 5, 6}}
	ctx.Output = [][]float32{make([]float32, 3), make([]float32, 3)}

	if ctx.NumSamples() != 3 {
		t.Errorf("NumSamples() = %d, want 3", ctx.NumSamples())
	}
	if ctx.NumInputChannels() != 2 || ctx.NumOutputChannels() != 2 {
		t.Errorf("channels = %d in / %d out, want 2 / 2", ctx.NumInputChannels(), ctx.NumOutputChannels())
	}

	copy(ctx.Output[1], ctx.Input[1])
	ctx.Clear()
	for ch := range ctx.Output {
		for i, v := range ctx.Output[ch] {
			if v != 0 {
				t.Errorf("Output[%d][%d] = %f after Clear", ch, i, v)
			}
		}
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusNormal:    "normal",
		StatusTail:      "tail",
		StatusKeepAlive: "keep-alive",
		StatusError:     "error",
		Status(42):      "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", s, got, want)
		}
	}
}
