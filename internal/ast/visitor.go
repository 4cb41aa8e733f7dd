package ast

// ItemVisitor is invoked once per item, in source order, as WalkItems
// descends into namespaces and classes. Returning false from a visit of
// a namespace or class skips its members.
type ItemVisitor func(id ItemID, item *Item) bool

// WalkItems visits every item reachable from roots, descending into
// namespace and class member lists. The resolver (component B) uses this
// to build the scope tree in one pass before any name lookup happens.
func (t *Tree) WalkItems(roots []ItemID, visit ItemVisitor) {
	for _, id := range roots {
		t.walkItem(id, visit)
	}
}

func (t *Tree) walkItem(id ItemID, visit ItemVisitor) {
	item := t.Item(id)
	if item == nil {
		return
	}
	if !visit(id, item) {
		return
	}
	switch item.Kind {
	case ItemNamespace:
		ns, _ := t.Namespace(id)
		t.WalkItems(ns.Members, visit)
	case ItemClass:
		cls, _ := t.Class(id)
		t.WalkItems(cls.Members, visit)
	case ItemTemplate:
		tmpl, _ := t.Template(id)
		t.walkItem(tmpl.Entity, visit)
	}
}
