package matching

// PreconditionError indicates a matching run that cannot start because its
// inputs make the whole batch meaningless, rather than failing per candidate.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// CandidateError indicates a single candidate that could not be scored.
// The batch continues; the failure is reported in the outcome.
type CandidateError struct {
	Identifier string
	Message    string
}

func (e *CandidateError) Error() string {
	if e.Identifier == "" {
		return e.Message
	}
	return e.Identifier + ": " + e.Message
}
