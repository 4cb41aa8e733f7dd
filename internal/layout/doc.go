// Package layout computes class layout (component F): base-subobject and
// field offsets, virtual-base flattening for diamond inheritance, and
// vtable construction. It generalises the teacher's structural-type layout
// engine (cache, cycle-detected recursive layoutOf) from primitive/struct/
// union/tuple types to C++ classes, whose layout additionally depends on
// their base-specifier list and virtual-function table.
package layout
