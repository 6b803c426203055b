package graph

import "fmt"

// NodeKind selects which payload shape (if any) a compiled node carries and
// which dispatch row governs it. The dispatch table is indexed by this enum,
// so the order here is part of the on-wire contract.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota

	KindEntryCall
	KindEntryCallCoroutine
	KindMessageHandler
	KindMessageHandlerCoroutine
	KindReflectedFunction
	KindInplaceCoroutine
	KindGetProperty
	KindSetProperty
	KindGetOwner

	KindBranch
	KindAnd
	KindOr
	KindNot
	KindCompare
	KindIsValid

	KindAdd
	KindSubtract
	KindMultiply
	KindDivide

	KindToBool
	KindToByte
	KindToInt
	KindToInt64
	KindToFloat
	KindToDouble
	KindToString
	KindToVariant
	KindConvertVariant

	KindMakeArray
	KindTryGetComponent

	KindStartCoroutine
	KindStopCoroutine
	KindStopAllCoroutines
	KindWaitForAll
	KindWaitForAny
	KindYield

	// KindCount closes the enumeration. The dispatch table is sized by it,
	// so adding a kind without a table decision does not compile.
	KindCount
)

var kindNames = [KindCount]string{
	KindInvalid:                 "Invalid",
	KindEntryCall:               "EntryCall",
	KindEntryCallCoroutine:      "EntryCall_Coroutine",
	KindMessageHandler:          "MessageHandler",
	KindMessageHandlerCoroutine: "MessageHandler_Coroutine",
	KindReflectedFunction:       "ReflectedFunction",
	KindInplaceCoroutine:        "InplaceCoroutine",
	KindGetProperty:             "GetProperty",
	KindSetProperty:             "SetProperty",
	KindGetOwner:                "GetOwner",
	KindBranch:                  "Branch",
	KindAnd:                     "And",
	KindOr:                      "Or",
	KindNot:                     "Not",
	KindCompare:                 "Compare",
	KindIsValid:                 "IsValid",
	KindAdd:                     "Add",
	KindSubtract:                "Subtract",
	KindMultiply:                "Multiply",
	KindDivide:                  "Divide",
	KindToBool:                  "ToBool",
	KindToByte:                  "ToByte",
	KindToInt:                   "ToInt",
	KindToInt64:                 "ToInt64",
	KindToFloat:                 "ToFloat",
	KindToDouble:                "ToDouble",
	KindToString:                "ToString",
	KindToVariant:               "ToVariant",
	KindConvertVariant:          "ConvertVariant",
	KindMakeArray:               "MakeArray",
	KindTryGetComponent:         "TryGetComponent",
	KindStartCoroutine:          "StartCoroutine",
	KindStopCoroutine:           "StopCoroutine",
	KindStopAllCoroutines:       "StopAllCoroutines",
	KindWaitForAll:              "WaitForAll",
	KindWaitForAny:              "WaitForAny",
	KindYield:                   "Yield",
}

// String returns the kind name used in diagnostics and disassembly.
func (k NodeKind) String() string {
	if k >= KindCount {
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ComparisonOperator enumerates the operators a Compare node (and a
// blackboard condition) can apply.
type ComparisonOperator uint8

const (
	CompareEqual ComparisonOperator = iota
	CompareNotEqual
	CompareLess
	CompareLessEqual
	CompareGreater
	CompareGreaterEqual

	comparisonOperatorCount
)

var comparisonSymbols = [comparisonOperatorCount]string{
	CompareEqual:        "==",
	CompareNotEqual:     "!=",
	CompareLess:         "<",
	CompareLessEqual:    "<=",
	CompareGreater:      ">",
	CompareGreaterEqual: ">=",
}

// String returns the operator symbol.
func (o ComparisonOperator) String() string {
	if o >= comparisonOperatorCount {
		return fmt.Sprintf("ComparisonOperator(%d)", uint8(o))
	}
	return comparisonSymbols[o]
}

// Valid reports whether the ordinal names a defined operator.
func (o ComparisonOperator) Valid() bool {
	return o < comparisonOperatorCount
}

// Evaluate applies the operator to two numeric values.
func (o ComparisonOperator) Evaluate(a, b float64) bool {
	switch o {
	case CompareEqual:
		return a == b
	case CompareNotEqual:
		return a != b
	case CompareLess:
		return a < b
	case CompareLessEqual:
		return a <= b
	case CompareGreater:
		return a > b
	case CompareGreaterEqual:
		return a >= b
	}
	return false
}

// CoroutineCreationMode controls what StartCoroutine does when a coroutine
// with the same name is already running.
type CoroutineCreationMode uint8

const (
	// CoroutineStopOther stops the running coroutine and starts the new one.
	CoroutineStopOther CoroutineCreationMode = iota
	// CoroutineJoinOrSkip does not start a new coroutine while one runs.
	CoroutineJoinOrSkip
	// CoroutineAllowOverlap always starts a new coroutine.
	CoroutineAllowOverlap

	coroutineCreationModeCount
)

var coroutineModeNames = [coroutineCreationModeCount]string{
	CoroutineStopOther:    "StopOther",
	CoroutineJoinOrSkip:   "JoinOrSkip",
	CoroutineAllowOverlap: "AllowOverlap",
}

// String returns the mode name.
func (m CoroutineCreationMode) String() string {
	if m >= coroutineCreationModeCount {
		return fmt.Sprintf("CoroutineCreationMode(%d)", uint8(m))
	}
	return coroutineModeNames[m]
}
