package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/token"

	"github.com/roach88/axis/internal/compiler"
	"github.com/roach88/axis/internal/ir"
)

// LoadResult contains a job loaded from a directory.
type LoadResult struct {
	Job       *ir.Job
	FileCount int // Number of CUE files found
}

// LoadError represents an error that occurred during job loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadJob loads and compiles the CUE job in dir.
// Every failure is returned as a *LoadError carrying one of the E00x codes.
// Semantic validation is left to the caller.
func LoadJob(dir string) (*LoadResult, error) {
	// Verify directory exists
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("job directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing job directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	// Find CUE files
	cueFiles, err := compiler.FindCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	value, err := compiler.LoadDir(dir)
	if err != nil {
		var compileErr *compiler.CompileError
		if errors.As(err, &compileErr) {
			return nil, convertCompileError(compileErr, ErrCodeBuildFailed)
		}
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
	}

	job, err := compiler.CompileJob(value.LookupPath(cue.ParsePath(compiler.JobField)))
	if err != nil {
		var compileErr *compiler.CompileError
		if errors.As(err, &compileErr) {
			return nil, convertCompileError(compileErr, ErrCodeSchema)
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
	}

	return &LoadResult{Job: job, FileCount: len(cueFiles)}, nil
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err *compiler.CompileError, code string) *LoadError {
	return &LoadError{
		Code:    code,
		Message: fmt.Sprintf("%s: %s", err.Field, err.Message),
		Pos:     err.Pos,
	}
}

// asLoadError returns err as a LoadError, wrapping foreign errors as E001.
func asLoadError(err error) *LoadError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
}

// Error code constants - unified across all CLI commands.
// Job validation codes (E1xx) come from the compiler package.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeSchema      = "E008" // Job does not match the schema
	ErrCodeStore       = "E009" // History database error
	ErrCodeInvalidArgs = "E010" // Malformed command arguments
)
