package animation

// Function maps linear progress in [0, 1] to eased progress.
type Function func(progress float32) float32

// Linear is the identity easing.
func Linear(p float32) float32 {
	return p
}

// PingPong runs forward over the first half and back over the second, ending where it started.
func PingPong(p float32) float32 {
	if p < 0.5 {
		return p * 2
	}
	return 1 - (p-0.5)*2
}

// EaseInOut is the smoothstep curve.
func EaseInOut(p float32) float32 {
	return p * p * (3 - 2*p)
}
