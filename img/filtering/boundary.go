package filtering

// BoundaryMode controls how spatial filters treat pixels beyond the image
// edge. The modes mirror the usual scientific conventions.
type BoundaryMode int

const (
	// ModeReflect reflects about the edge: (d c b a | a b c d | d c b a).
	ModeReflect BoundaryMode = iota + 1

	// ModeNearest repeats the edge pixel.
	ModeNearest

	// ModeWrap wraps around periodically.
	ModeWrap

	// ModeMirror reflects about the edge pixel center: (d c b | a b c d | c b a).
	ModeMirror

	// ModeConstant treats outside pixels as zero.
	ModeConstant
)

// resolveIndex maps a possibly out-of-range index into [0, n). The second
// return is false when the mode is ModeConstant and the index falls outside.
func resolveIndex(i, n int, mode BoundaryMode) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}

	switch mode {
	case ModeNearest:
		if i < 0 {
			return 0, true
		}
		return n - 1, true

	case ModeWrap:
		i %= n
		if i < 0 {
			i += n
		}
		return i, true

	case ModeMirror:
		if n == 1 {
			return 0, true
		}
		period := 2 * (n - 1)
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - i
		}
		return i, true

	case ModeConstant:
		return 0, false

	default: // ModeReflect
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i, true
	}
}

func validMode(mode BoundaryMode) bool {
	switch mode {
	case ModeReflect, ModeNearest, ModeWrap, ModeMirror, ModeConstant:
		return true
	}
	return false
}
