package engine

import "fmt"

// ErrorKind classifies the recoverable conditions the engine reports.
type ErrorKind int

const (
	// EmptyDataset: no records, or nothing left after bucketing.
	EmptyDataset ErrorKind = iota + 1
	// ContainerTooSmall: bars would have a non-positive width or the plot no height.
	ContainerTooSmall
	// UnmatchedValue: a record value fell outside every configured range.
	UnmatchedValue
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyDataset:
		return "empty dataset"
	case ContainerTooSmall:
		return "container too small"
	case UnmatchedValue:
		return "unmatched value"
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// ChartError is a caller-recoverable condition. None of them are fatal.
type ChartError struct {
	Kind   ErrorKind
	Detail string
}

func (e *ChartError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

// Is matches any ChartError of the same kind, so errors.Is works against
// the sentinels regardless of Detail.
func (e *ChartError) Is(target error) bool {
	t, ok := target.(*ChartError)
	return ok && t.Kind == e.Kind
}

var (
	ErrEmptyDataset      = &ChartError{Kind: EmptyDataset}
	ErrContainerTooSmall = &ChartError{Kind: ContainerTooSmall}
	ErrUnmatchedValue    = &ChartError{Kind: UnmatchedValue}
)

func chartErrorf(kind ErrorKind, format string, args ...interface{}) error {
	return &ChartError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
