package ast

import (
	"cppmir/internal/arena"
	"cppmir/internal/source"
)

// ItemKind tags what an Item's payload holds. Every node category the
// AST producer interface names has exactly one ItemKind, except for
// statements and expressions, which get their own arenas (stmt.go,
// expr.go).
type ItemKind uint8

const (
	ItemNamespace ItemKind = iota
	ItemClass
	ItemFunction
	ItemVariable
	ItemTemplate
	ItemConcept
	ItemUsingDeclaration
	ItemUsingDirective
)

// Item is the tagged header every top-level or member declaration shares:
// a kind, a source span, and a payload index into the kind-specific
// arena. Tree.Name resolves the declared name shared by every kind.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// Tree owns every arena backing one translation unit's consumed AST. The
// AST producer (or, in tests, Tree's New* constructors) populates it; the resolver and MIR
// builder only ever read from it.
type Tree struct {
	Items *arena.Arena[Item]

	Namespaces        *arena.Arena[NamespaceDef]
	Classes           *arena.Arena[ClassDef]
	Functions         *arena.Arena[FunctionDecl]
	Variables         *arena.Arena[VariableDecl]
	Templates         *arena.Arena[TemplateDecl]
	Concepts          *arena.Arena[ConceptDecl]
	UsingDeclarations *arena.Arena[UsingDeclaration]
	UsingDirectives   *arena.Arena[UsingDirective]

	Params    *arena.Arena[Param]
	BaseSpecs *arena.Arena[BaseSpecifier]
	TypeRefs  *arena.Arena[TypeRef]
	Cases     *arena.Arena[SwitchCase]

	Stmts          *arena.Arena[Stmt]
	StmtCompounds  *arena.Arena[StmtCompoundData]
	StmtExprs      *arena.Arena[StmtExprData]
	StmtIfs        *arena.Arena[StmtIfData]
	StmtWhiles     *arena.Arena[StmtWhileData]
	StmtFors       *arena.Arena[StmtForData]
	StmtDoWhiles   *arena.Arena[StmtDoWhileData]
	StmtSwitches   *arena.Arena[StmtSwitchData]
	StmtReturns    *arena.Arena[StmtReturnData]
	StmtDecls      *arena.Arena[StmtDeclData]

	Exprs             *arena.Arena[Expr]
	ExprLiterals      *arena.Arena[ExprLiteralData]
	ExprNameRefs      *arena.Arena[ExprNameRefData]
	ExprMemberAccess  *arena.Arena[ExprMemberAccessData]
	ExprCalls         *arena.Arena[ExprCallData]
	ExprBinaries      *arena.Arena[ExprBinaryData]
	ExprUnaries       *arena.Arena[ExprUnaryData]
	ExprTernaries     *arena.Arena[ExprTernaryData]
	ExprCasts         *arena.Arena[ExprCastData]
	ExprSubscripts    *arena.Arena[ExprSubscriptData]
	ExprNews          *arena.Arena[ExprNewData]
	ExprDeletes       *arena.Arena[ExprDeleteData]
	ExprSizeofs       *arena.Arena[ExprSizeofData]

	Root []ItemID // top-level items of the translation unit, in source order
}

// NewTree allocates a Tree with every arena preallocated to capHint.
func NewTree(capHint int) *Tree {
	return &Tree{
		Items:             arena.New[Item](capHint),
		Namespaces:        arena.New[NamespaceDef](capHint / 8),
		Classes:           arena.New[ClassDef](capHint / 4),
		Functions:         arena.New[FunctionDecl](capHint),
		Variables:         arena.New[VariableDecl](capHint),
		Templates:         arena.New[TemplateDecl](capHint / 8),
		Concepts:          arena.New[ConceptDecl](capHint / 16),
		UsingDeclarations: arena.New[UsingDeclaration](capHint / 16),
		UsingDirectives:   arena.New[UsingDirective](capHint / 16),
		Params:            arena.New[Param](capHint),
		BaseSpecs:         arena.New[BaseSpecifier](capHint / 8),
		TypeRefs:          arena.New[TypeRef](capHint),
		Cases:             arena.New[SwitchCase](capHint),

		Stmts:         arena.New[Stmt](capHint * 4),
		StmtCompounds: arena.New[StmtCompoundData](capHint),
		StmtExprs:     arena.New[StmtExprData](capHint * 2),
		StmtIfs:       arena.New[StmtIfData](capHint),
		StmtWhiles:    arena.New[StmtWhileData](capHint / 2),
		StmtFors:      arena.New[StmtForData](capHint / 2),
		StmtDoWhiles:  arena.New[StmtDoWhileData](capHint / 4),
		StmtSwitches:  arena.New[StmtSwitchData](capHint / 4),
		StmtReturns:   arena.New[StmtReturnData](capHint),
		StmtDecls:     arena.New[StmtDeclData](capHint),

		Exprs:            arena.New[Expr](capHint * 4),
		ExprLiterals:     arena.New[ExprLiteralData](capHint * 2),
		ExprNameRefs:     arena.New[ExprNameRefData](capHint * 2),
		ExprMemberAccess: arena.New[ExprMemberAccessData](capHint),
		ExprCalls:        arena.New[ExprCallData](capHint * 2),
		ExprBinaries:     arena.New[ExprBinaryData](capHint * 2),
		ExprUnaries:      arena.New[ExprUnaryData](capHint),
		ExprTernaries:    arena.New[ExprTernaryData](capHint / 4),
		ExprCasts:        arena.New[ExprCastData](capHint / 2),
		ExprSubscripts:   arena.New[ExprSubscriptData](capHint / 2),
		ExprNews:         arena.New[ExprNewData](capHint / 4),
		ExprDeletes:      arena.New[ExprDeleteData](capHint / 4),
		ExprSizeofs:      arena.New[ExprSizeofData](capHint / 4),

		Root: make([]ItemID, 0, 16),
	}
}

// Item returns the tagged header for id.
func (t *Tree) Item(id ItemID) *Item {
	return t.Items.Get(uint32(id))
}

func (t *Tree) newItem(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(t.Items.Allocate(Item{Kind: kind, Span: span, Payload: payload}))
}

// Name returns the declared name shared by every item kind, or
// source.NoStringID for kinds without one (using-directive).
func (t *Tree) Name(id ItemID) source.StringID {
	item := t.Item(id)
	if item == nil {
		return source.NoStringID
	}
	switch item.Kind {
	case ItemNamespace:
		return t.Namespaces.Get(uint32(item.Payload)).Name
	case ItemClass:
		return t.Classes.Get(uint32(item.Payload)).Name
	case ItemFunction:
		return t.Functions.Get(uint32(item.Payload)).Name
	case ItemVariable:
		return t.Variables.Get(uint32(item.Payload)).Name
	case ItemTemplate:
		return t.Name(t.Templates.Get(uint32(item.Payload)).Entity)
	case ItemConcept:
		return t.Concepts.Get(uint32(item.Payload)).Name
	case ItemUsingDeclaration:
		return t.UsingDeclarations.Get(uint32(item.Payload)).Name
	default:
		return source.NoStringID
	}
}
