package response

// phase is how far a Writer has got through a response.
type phase uint8

const (
	phaseStatusLine phase = iota
	phaseHeaders
	phaseBody
	phaseDone
)

var phaseNames = [...]string{
	phaseStatusLine: "status line",
	phaseHeaders:    "headers",
	phaseBody:       "body",
	phaseDone:       "done",
}

func (p phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// next returns the phase that follows p. A response without a body skips
// phaseBody.
func (p phase) next(hasBody bool) phase {
	switch p {
	case phaseStatusLine:
		return phaseHeaders
	case phaseHeaders:
		if hasBody {
			return phaseBody
		}
		return phaseDone
	case phaseBody:
		return phaseDone
	default:
		panic("response writer advanced past " + p.String())
	}
}
