package diag

import "fmt"

// Code identifies the category and precise cause of a Diagnostic. The
// numeric ranges mirror the phases of the translator: name lookup, typing,
// overload resolution, templates, class layout, and MIR lowering, with a
// final range for host-side failures (malformed AST, serialization).
type Code uint16

const (
	UnknownCode Code = 0

	// Lookup errors (1000s): scope and name resolution (component B).
	LookupInfo             Code = 1000
	LookupNameNotFound     Code = 1001
	LookupNameAmbiguous    Code = 1002
	LookupAccessViolation  Code = 1003
	LookupUsingConflict    Code = 1004
	LookupCircularUsing    Code = 1005
	LookupQualifiedNoScope Code = 1006
	LookupDuplicateSymbol  Code = 1007
	LookupScopeMismatch    Code = 1008

	// Typing errors (2000s): the canonical type system (component C).
	TypingInfo                     Code = 2000
	TypingTypeMismatch             Code = 2001
	TypingIncompleteType           Code = 2002
	TypingInvalidConversion        Code = 2003
	TypingInvalidPointerArithmetic Code = 2004
	TypingInvalidBinaryOperands    Code = 2005
	TypingInvalidUnaryOperand      Code = 2006
	TypingQualifierDiscarded       Code = 2007
	TypingArrayToPointerDecay      Code = 2008
	TypingVoidExpressionUsed       Code = 2009

	// Overload resolution errors (3000s, component D).
	OverloadInfo               Code = 3000
	OverloadNoMatchingFunction Code = 3001
	OverloadAmbiguous          Code = 3002
	OverloadDeletedFunction    Code = 3003
	OverloadNoViableConversion Code = 3004

	// Template instantiation errors (4000s, component E).
	TemplateInfo                   Code = 4000
	TemplateDeductionFailure       Code = 4001
	TemplateConstraintNotSatisfied Code = 4002
	TemplateRecursiveInstantiation Code = 4003
	TemplateSubstitutionFailure    Code = 4004
	TemplateTooManyArguments       Code = 4005
	TemplateTooFewArguments        Code = 4006

	// Class layout errors (5000s, component F).
	LayoutInfo               Code = 5000
	LayoutCircularBase       Code = 5001
	LayoutInvalidVirtualBase Code = 5002
	LayoutAmbiguousBase      Code = 5003
	LayoutFieldOverflow      Code = 5004

	// MIR lowering errors (6000s, component G).
	LoweringInfo                       Code = 6000
	LoweringUnsupportedConstruct       Code = 6001
	LoweringInternalInvariantViolation Code = 6002
	LoweringMissingTerminator          Code = 6003
	LoweringUnresolvedTarget           Code = 6004

	// Mangling errors (7000s, component H).
	MangleInfo              Code = 7000
	MangleUnsupportedSymbol Code = 7001
	MangleCollision         Code = 7002

	// Host / driver errors (9000s): malformed consumed AST, batch and
	// serialization failures. These never originate inside a component;
	// they guard the boundary described by the external interfaces.
	HostInfo                  Code = 9000
	HostMalformedAST          Code = 9001
	HostSerializationFailed   Code = 9002
	HostTranslationUnitFailed Code = 9003
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LookupInfo:             "name lookup information",
	LookupNameNotFound:     "name not found in any enclosing scope",
	LookupNameAmbiguous:    "name resolves to more than one entity",
	LookupAccessViolation:  "member is not accessible in this context",
	LookupUsingConflict:    "using-declaration conflicts with an existing declaration",
	LookupCircularUsing:    "using-directive forms a cycle",
	LookupQualifiedNoScope: "qualified name does not name a scope",
	LookupDuplicateSymbol:  "duplicate declaration in this scope",
	LookupScopeMismatch:    "scope stack mismatch while leaving a scope",

	TypingInfo:                     "type checking information",
	TypingTypeMismatch:             "type mismatch",
	TypingIncompleteType:           "use of incomplete type",
	TypingInvalidConversion:        "no conversion between these types",
	TypingInvalidPointerArithmetic: "invalid pointer arithmetic",
	TypingInvalidBinaryOperands:    "invalid operands to binary operator",
	TypingInvalidUnaryOperand:      "invalid operand to unary operator",
	TypingQualifierDiscarded:       "conversion discards cv-qualifiers",
	TypingArrayToPointerDecay:      "array decayed to pointer",
	TypingVoidExpressionUsed:       "expression of type void used as a value",

	OverloadInfo:               "overload resolution information",
	OverloadNoMatchingFunction: "no matching function for call",
	OverloadAmbiguous:          "call is ambiguous between candidates",
	OverloadDeletedFunction:    "selected candidate is deleted",
	OverloadNoViableConversion: "no viable conversion sequence for argument",

	TemplateInfo:                   "template instantiation information",
	TemplateDeductionFailure:       "template argument deduction failed",
	TemplateConstraintNotSatisfied: "constraint not satisfied",
	TemplateRecursiveInstantiation: "instantiation depth exceeded",
	TemplateSubstitutionFailure:    "substitution failure",
	TemplateTooManyArguments:       "too many template arguments",
	TemplateTooFewArguments:        "too few template arguments",

	LayoutInfo:               "class layout information",
	LayoutCircularBase:       "base class list forms a cycle",
	LayoutInvalidVirtualBase: "virtual base cannot be laid out",
	LayoutAmbiguousBase:      "ambiguous base class access",
	LayoutFieldOverflow:      "field layout exceeds addressable size",

	LoweringInfo:                       "MIR lowering information",
	LoweringUnsupportedConstruct:       "construct is not supported by the MIR lowering",
	LoweringInternalInvariantViolation: "internal invariant violated during lowering",
	LoweringMissingTerminator:          "basic block left without a terminator",
	LoweringUnresolvedTarget:           "branch target could not be resolved",

	MangleInfo:              "name mangling information",
	MangleUnsupportedSymbol: "symbol cannot be mangled",
	MangleCollision:         "two distinct symbols mangle to the same name",

	HostInfo:                  "driver information",
	HostMalformedAST:          "consumed AST violates a structural precondition",
	HostSerializationFailed:   "MIR serialization failed",
	HostTranslationUnitFailed: "translation unit aborted before completion",
}

// ID returns the code's stable, category-prefixed string form (e.g.
// "TYP2001"), used in golden output and CLI rendering.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LKP%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("OVL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("TPL%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("LAY%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("MIR%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("MNG%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("HST%04d", ic)
	}
	return "E0000"
}

// Title returns the human-readable description registered for c.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
