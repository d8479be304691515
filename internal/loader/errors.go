package loader

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a load failure.
type ErrorKind int

const (
	// InvalidModel: the file parsed but holds nothing renderable.
	InvalidModel ErrorKind = iota + 1
	// LoadFailed: reading or parsing the file failed.
	LoadFailed
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidModel:
		return "invalid model"
	case LoadFailed:
		return "load failed"
	}
	return "unknown"
}

// LoadError is the only error type Load returns.
type LoadError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loader: %s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsInvalidModel reports whether err is a LoadError of kind InvalidModel.
func IsInvalidModel(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == InvalidModel
}

// IsLoadFailed reports whether err is a LoadError of kind LoadFailed.
func IsLoadFailed(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == LoadFailed
}
