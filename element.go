package scrollwork

// HitShape is used for custom hit testing regions in element-local space.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data.
type PointerContext struct {
	Element *Element
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
	Button  MouseButton
}

// FlowDirection controls how a container positions its children.
type FlowDirection uint8

const (
	FlowNone   FlowDirection = iota // children keep their own X/Y
	FlowColumn                      // children stacked top to bottom
	FlowRow                         // children stacked left to right
)

// positioning is the layout mode of a single element.
type positioning uint8

const (
	positionFlow  positioning = iota // laid out in document space
	positionFixed                    // held at viewport coordinates (pinned)
)

// elementIDCounter is a plain counter. Elements are only touched from the game loop.
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is the fundamental document node. Layout fields describe where the
// element sits in document space; style fields are the outputs the
// Choreographer writes each frame.
type Element struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Element
	children []*Element

	// Layout box, relative to the parent. X and Y are assigned by the
	// parent's flow when it has one.
	X, Y          float64
	Width, Height float64
	Flow          FlowDirection
	Gap           float64

	// Style outputs
	TranslateX, TranslateY float64
	ScaleX, ScaleY         float64
	Rotation               float64
	PivotX, PivotY         float64
	Opacity                float64
	Color                  Color
	Role                   string // theme palette role; overrides Color when the theme defines it
	Text                   string

	// Visibility & interaction
	Visible      bool
	Interactable bool
	HitShape     HitShape

	// Metadata
	UserData any

	// Per-element callbacks (nil by default)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)
	OnClick        func(PointerContext)

	// Computed during traversal
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Pinning
	position    positioning
	fixedX      float64
	fixedY      float64
	flowOffsetY float64

	// Box observation
	boxWatchers []boxWatcher
	nextWatchID uint32

	// Internal
	documentRoot bool
	writes       uint64
	disposed     bool
}

type boxWatcher struct {
	id uint32
	fn func(*Element)
}

// elementDefaults sets the common default field values shared by all constructors.
func elementDefaults(e *Element) {
	e.ID = nextElementID()
	e.ScaleX = 1
	e.ScaleY = 1
	e.Opacity = 1
	e.Color = ColorWhite
	e.Visible = true
	e.transformDirty = true
}

// NewElement creates a leaf element with the given layout size.
func NewElement(name string, width, height float64) *Element {
	e := &Element{Name: name, Width: width, Height: height}
	elementDefaults(e)
	return e
}

// NewContainer creates a container that lays its children out along flow.
// A flowing container sizes itself to its content on every layout pass.
func NewContainer(name string, flow FlowDirection) *Element {
	e := &Element{Name: name, Flow: flow}
	elementDefaults(e)
	return e
}

// newDocumentRoot creates the root element of a document. Elements are
// attached only while they can reach a document root.
func newDocumentRoot() *Element {
	e := NewContainer("document", FlowColumn)
	e.documentRoot = true
	return e
}

// --- Tree manipulation ---

// AddChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (e *Element) AddChild(child *Element) {
	if child == nil {
		panic("scrollwork: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(e, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, e) {
		panic("scrollwork: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
		child.Parent.notifyBoxChange()
	}
	child.Parent = e
	e.children = append(e.children, child)
	markSubtreeDirty(child)
	e.notifyBoxChange()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(e)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (e *Element) AddChildAt(child *Element, index int) {
	if child == nil {
		panic("scrollwork: cannot add nil child")
	}
	if isAncestor(child, e) {
		panic("scrollwork: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
		child.Parent.notifyBoxChange()
	}
	if index < 0 || index > len(e.children) {
		panic("scrollwork: child index out of range")
	}
	child.Parent = e
	e.children = append(e.children, nil)
	copy(e.children[index+1:], e.children[index:])
	e.children[index] = child
	markSubtreeDirty(child)
	e.notifyBoxChange()
}

// RemoveChild detaches child from this element.
// Panics if child.Parent != e.
func (e *Element) RemoveChild(child *Element) {
	if child.Parent != e {
		panic("scrollwork: child's parent is not this element")
	}
	e.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
	e.notifyBoxChange()
}

// RemoveFromParent detaches this element from its parent.
// No-op if this element has no parent.
func (e *Element) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.RemoveChild(e)
}

// RemoveChildren detaches all children from this element.
// Children are NOT disposed.
func (e *Element) RemoveChildren() {
	for _, child := range e.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	e.children = e.children[:0]
	e.notifyBoxChange()
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// NumChildren returns the number of children.
func (e *Element) NumChildren() int {
	return len(e.children)
}

// ChildAt returns the child at the given index.
func (e *Element) ChildAt(index int) *Element {
	return e.children[index]
}

// IndexOf returns the index of child among e's children, or -1.
func (e *Element) IndexOf(child *Element) int {
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}

// --- Size ---

// SetSize changes the element's layout box and notifies box observers on
// this element and its ancestors.
func (e *Element) SetSize(width, height float64) {
	if e.Width == width && e.Height == height {
		return
	}
	e.Width = width
	e.Height = height
	e.notifyBoxChange()
}

// ObserveBox registers fn to be called whenever this element's box or any
// descendant's box changes size or the subtree gains or loses children.
func (e *Element) ObserveBox(fn func(*Element)) Disposer {
	e.nextWatchID++
	id := e.nextWatchID
	e.boxWatchers = append(e.boxWatchers, boxWatcher{id: id, fn: fn})
	return once(func() {
		for i := range e.boxWatchers {
			if e.boxWatchers[i].id == id {
				copy(e.boxWatchers[i:], e.boxWatchers[i+1:])
				e.boxWatchers[len(e.boxWatchers)-1] = boxWatcher{}
				e.boxWatchers = e.boxWatchers[:len(e.boxWatchers)-1]
				return
			}
		}
	})
}

func (e *Element) notifyBoxChange() {
	for p := e; p != nil; p = p.Parent {
		for _, w := range p.boxWatchers {
			w.fn(e)
		}
	}
}

// --- Liveness & disposal ---

// IsAttached reports whether the element is part of a live document: not
// disposed and reachable from a document root.
func (e *Element) IsAttached() bool {
	if e.disposed {
		return false
	}
	for p := e; p != nil; p = p.Parent {
		if p.documentRoot {
			return true
		}
	}
	return false
}

// Dispose removes this element from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Element) dispose() {
	e.disposed = true
	e.ID = 0
	for _, child := range e.children {
		child.Parent = nil
		child.dispose()
	}
	e.children = nil
	e.Parent = nil
	e.HitShape = nil
	e.UserData = nil
	e.boxWatchers = nil
	e.OnPointerEnter = nil
	e.OnPointerLeave = nil
	e.OnClick = nil
}

// IsDisposed returns true if this element has been disposed.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// Writes returns how many style writes the Choreographer has made to this
// element. Tests use it to prove that disposed bindings stop writing.
func (e *Element) Writes() uint64 {
	return e.writes
}

// IsPinned reports whether the element is currently held fixed in the viewport.
func (e *Element) IsPinned() bool {
	return e.position == positionFixed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of e.
func isAncestor(candidate, e *Element) bool {
	for p := e; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (e *Element) removeChildByPtr(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on e and all its descendants.
func markSubtreeDirty(e *Element) {
	e.transformDirty = true
	for _, child := range e.children {
		markSubtreeDirty(child)
	}
}
