package level

// LevelBuilderOption is a functional option for Build.
type LevelBuilderOption func(*builder)

// WithDoorSpeed sets how fast doors slide, in units per second.
func WithDoorSpeed(speed float32) LevelBuilderOption {
	return func(b *builder) {
		b.doorSpeed = speed
	}
}

// WithLiftSpeed sets how fast lifts move, in units per second.
func WithLiftSpeed(speed float32) LevelBuilderOption {
	return func(b *builder) {
		b.liftSpeed = speed
	}
}

// WithLiftHeight sets how far lifts rise.
func WithLiftHeight(height float32) LevelBuilderOption {
	return func(b *builder) {
		b.liftHeight = height
	}
}
