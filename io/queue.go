package io

// Queue is an in-memory channel. Input lines are consumed in order by
// Receive, and every Send is appended to Output.
type Queue struct {
	Input  []string
	Output []uint16

	readIndex int
}

var _ Channel = (*Queue)(nil)

// Rewind restarts the input and discards the output.
func (qc *Queue) Rewind() {
	qc.readIndex = 0
	qc.Output = nil
}

// Receive returns the next input line, or ErrChannelEmpty when the input is
// exhausted.
func (qc *Queue) Receive() (text string, err error) {
	if qc.readIndex >= len(qc.Input) {
		err = ErrChannelEmpty
		return
	}

	text = qc.Input[qc.readIndex]
	qc.readIndex++
	return
}

// Send appends a value to the output.
func (qc *Queue) Send(value uint16) (err error) {
	qc.Output = append(qc.Output, value)
	return
}

// Remaining returns the number of unread input lines.
func (qc *Queue) Remaining() int {
	return len(qc.Input) - qc.readIndex
}
