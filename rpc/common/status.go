package common

import "strconv"

// --------------------------------------------------------------------------
// Status Code Definition
// --------------------------------------------------------------------------

// StatusCode is the status value reported by the daemon in a response header.
// The vocabulary mirrors the Easel library's return codes;
// anything outside the enumeration below is treated as a protocol violation.
type StatusCode uint32

const (
	StatusOK StatusCode = iota
	StatusFail
	StatusEOL
	StatusEOF
	StatusEOD
	StatusMemory
	StatusNotFound
	StatusFormat
	StatusAmbiguous
	StatusDivZero
	StatusIncompatible
	StatusInvalid
	StatusSystem
	StatusCorrupt
	StatusInconceivable
	StatusSyntax
	StatusRange
	StatusDuplicate
	StatusNoHalt
	StatusNoResult
	StatusNoData
	StatusType
	StatusOverwrite
	StatusNoSpace
	StatusUnimplemented
	StatusNoFormat
	StatusNoAlphabet
	StatusWrite
	StatusInaccurate

	// maxStatusCode bounds the known enumeration for header validation.
	maxStatusCode = StatusInaccurate
)

// Known reports whether the code is part of the protocol enumeration.
func (c StatusCode) Known() bool {
	return c <= maxStatusCode
}

// String returns the string representation of a StatusCode.
func (c StatusCode) String() string {
	switch c {
	case StatusOK:
		return "ok"
	case StatusFail:
		return "failure"
	case StatusEOL:
		return "end of line"
	case StatusEOF:
		return "end of file"
	case StatusEOD:
		return "end of data"
	case StatusMemory:
		return "allocation failure"
	case StatusNotFound:
		return "not found"
	case StatusFormat:
		return "format error"
	case StatusAmbiguous:
		return "ambiguous input"
	case StatusDivZero:
		return "division by zero"
	case StatusIncompatible:
		return "incompatible input"
	case StatusInvalid:
		return "invalid argument"
	case StatusSystem:
		return "system call failure"
	case StatusCorrupt:
		return "corrupt data"
	case StatusInconceivable:
		return "internal failure"
	case StatusSyntax:
		return "syntax error"
	case StatusRange:
		return "value out of range"
	case StatusDuplicate:
		return "duplicate"
	case StatusNoHalt:
		return "no convergence"
	case StatusNoResult:
		return "no result"
	case StatusNoData:
		return "no data"
	case StatusType:
		return "type mismatch"
	case StatusOverwrite:
		return "would overwrite"
	case StatusNoSpace:
		return "no space"
	case StatusUnimplemented:
		return "unimplemented"
	case StatusNoFormat:
		return "unknown format"
	case StatusNoAlphabet:
		return "unknown alphabet"
	case StatusWrite:
		return "write failure"
	case StatusInaccurate:
		return "inaccurate result"
	default:
		return "unknown status " + strconv.FormatUint(uint64(c), 10)
	}
}
