// Package typesys implements the canonical, hash-consed type system
// (component C): every distinct structural type descriptor maps to exactly
// one TypeID, so two types are semantically equal iff their TypeIDs are
// identical. It is deliberately independent of internal/decl — a class or
// enum type only carries an opaque DeclRef, never a decl.DeclID — so decls
// can reference types without typesys needing to reference decls back.
package typesys
