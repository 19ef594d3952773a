package feed

import (
	"errors"

	"github.com/samber/mo"
)

type ErrorKind int

const (
	// Connectivity means that the transport failed to obtain any response.
	Connectivity ErrorKind = iota + 1
	// InvalidData means that a response has been obtained, but it's unusable.
	InvalidData
)

var _ error = Connectivity

func (k ErrorKind) Error() string {
	return k.String()
}

func (k ErrorKind) String() string {
	switch k {
	case Connectivity:
		return "connectivity error"
	case InvalidData:
		return "invalid data"
	default:
		return "unknown error"
	}
}

// LoadResult holds either the loaded items or an ErrorKind.
type LoadResult = mo.Result[[]Item]

func Success(items []Item) LoadResult {
	return mo.Ok(items)
}

func Failure(kind ErrorKind) LoadResult {
	return mo.Err[[]Item](kind)
}

func Kind(result LoadResult) (ErrorKind, bool) {
	var kind ErrorKind
	if !errors.As(result.Error(), &kind) {
		return 0, false
	}
	return kind, true
}
