package param

// Builder provides a fluent API for creating parameters
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder with a linear 0-1 range
func New(id uint32, key, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:           id,
			Key:          key,
			Name:         name,
			ShortName:    name,
			Range:        Linear(0, 1),
			DefaultValue: 0,
			Flags:        CanAutomate,
		},
	}
}

// ShortName sets the short name
func (b *Builder) ShortName(name string) *Builder {
	b.param.ShortName = name
	return b
}

// Range sets a linear range
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Range = Linear(min, max)
	return b
}

// SkewedRange sets a skewed range
func (b *Builder) SkewedRange(min, max, factor float64) *Builder {
	b.param.Range = Skewed(min, max, factor)
	return b
}

// Default sets the default value (in the real range, not normalized)
func (b *Builder) Default(value float64) *Builder {
	b.param.DefaultValue = value
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Steps sets the number of discrete steps
func (b *Builder) Steps(count int32) *Builder {
	b.param.StepCount = count
	return b
}

// Flags sets parameter flags
func (b *Builder) Flags(flags uint32) *Builder {
	b.param.Flags = flags
	return b
}

// Smoothing sets how the processor interpolates toward new values
func (b *Builder) Smoothing(s Smoothing) *Builder {
	b.param.Smoothing = s
	return b
}

// ReadOnly marks the parameter as read-only
func (b *Builder) ReadOnly() *Builder {
	b.param.Flags |= IsReadOnly
	b.param.Flags &^= CanAutomate
	return b
}

// Hidden marks the parameter as hidden
func (b *Builder) Hidden() *Builder {
	b.param.Flags |= IsHidden
	return b
}

// Formatter sets custom value formatting and parsing on real values
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the configured parameter. Invariants are checked when the
// parameter is added to a Registry.
func (b *Builder) Build() *Parameter {
	return b.param
}
