package scene

import (
	"errors"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
)

var (
	ErrNilChild = errors.New("cannot add a nil child")
	ErrCycle    = errors.New("adding child would create a cycle")
)

/**
 * @brief A participant in the spatial hierarchy. Each node owns a
 * local transform (position, rotation, scale) and derives its world
 * matrix from its ancestors. World matrices are recomputed lazily:
 * mutations only mark nodes dirty, and UpdateWorldMatrix pays the
 * recomputation cost, typically once per frame from the root.
 */
type Node struct {
	/** @brief The node id, assigned from the identifier system. Pick
	 * results reference nodes through this id. */
	ID uint32
	/** @brief The node name, for debugging and lookups. */
	Name string

	/** @brief The position relative to the parent. */
	Position math.Vec3
	/** @brief The rotation relative to the parent. */
	Rotation math.Quaternion
	/** @brief The scale relative to the parent. */
	Scale math.Vec3
	/** @brief The up vector used by LookAt. */
	Up math.Vec3

	/** @brief Whether the node (and its subtree) should be rendered. */
	Visible bool
	/** @brief Render order; ties break on child insertion order. */
	RenderOrder int32

	/** @brief The parent node, nil for a root. Non-owning. */
	Parent *Node

	children []*Node

	localMatrix      math.Mat4
	worldMatrix      math.Mat4
	worldMatrixDirty bool
}

// NewNode creates a node with an identity transform, visible, render
// order 0 and a dirty world matrix.
func NewNode(name string) *Node {
	n := &Node{
		Name:             name,
		Rotation:         math.NewQuatIdentity(),
		Scale:            math.NewVec3One(),
		Up:               math.NewVec3Up(),
		Visible:          true,
		localMatrix:      math.NewMat4Identity(),
		worldMatrix:      math.NewMat4Identity(),
		worldMatrixDirty: true,
	}
	n.ID = core.IdentifierAcquireNewID(n)
	return n
}

// FindNodeByID resolves a node id (e.g. from a decoded pick value)
// back to its node, or nil if the id is not a live node.
func FindNodeByID(id uint32) *Node {
	n, ok := core.IdentifierOwner(id).(*Node)
	if !ok {
		return nil
	}
	return n
}

// Destroy detaches the node from its parent and recursively destroys
// its subtree, releasing all ids. No cross-references survive.
func (n *Node) Destroy() {
	n.RemoveFromParent()
	n.destroy()
}

func (n *Node) destroy() {
	for _, child := range n.children {
		child.Parent = nil
		child.destroy()
	}
	n.children = nil
	n.Parent = nil
	if err := core.IdentifierReleaseID(n.ID); err != nil {
		core.LogWarn("node %q: %v", n.Name, err)
	}
}

// Children returns the child list in insertion order. The returned
// slice must not be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

/**
 * @brief Attaches child to this node. If child already has a parent it
 * is detached from that parent first, so a node never has two parents.
 * The child's world matrix is marked dirty. Attaching a node to its
 * own descendant is rejected with ErrCycle.
 */
func (n *Node) Add(child *Node) error {
	if child == nil {
		return ErrNilChild
	}
	if isAncestor(child, n) {
		return ErrCycle
	}
	// Orphan if needed.
	if child.Parent != nil {
		child.Parent.Remove(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	child.worldMatrixDirty = true

	core.MetricsNodeAttached()
	core.EventFire(core.EVENT_CODE_NODE_ATTACHED, n, core.EventContext{
		ObjectID: child.ID,
		U32:      [4]uint32{n.ID},
	})
	return nil
}

/**
 * @brief Detaches child from this node. Calling this for a node that
 * is not a child is deliberately a no-op, not an error.
 */
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			child.Parent = nil
			n.children = append(n.children[:i], n.children[i+1:]...)
			core.MetricsNodeDetached()
			core.EventFire(core.EVENT_CODE_NODE_DETACHED, n, core.EventContext{
				ObjectID: child.ID,
			})
			return
		}
	}
}

// RemoveFromParent detaches this node from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.Remove(n)
	}
}

/**
 * @brief Depth-first pre-order traversal: visit is invoked on the node
 * itself before any child, then on each child subtree in insertion
 * order. The hierarchy must not be mutated during traversal.
 */
func (n *Node) Traverse(visit func(*Node)) {
	visit(n)
	for _, child := range n.children {
		child.Traverse(visit)
	}
}

// LocalMatrix returns the cached local matrix. Call UpdateLocalMatrix
// or UpdateWorldMatrix first to reflect transform mutations.
func (n *Node) LocalMatrix() math.Mat4 {
	return n.localMatrix
}

// WorldMatrix returns the cached world matrix. Only trustworthy after
// an update call that reached this node.
func (n *Node) WorldMatrix() math.Mat4 {
	return n.worldMatrix
}

// WorldMatrixDirty reports whether the world matrix needs recomputing
// before it can be trusted.
func (n *Node) WorldMatrixDirty() bool {
	return n.worldMatrixDirty
}

/**
 * @brief Recomputes the local matrix from the current position,
 * rotation and scale, and marks the world matrix dirty. This is the
 * only operation that can dirty a clean node "from below".
 */
func (n *Node) UpdateLocalMatrix() {
	n.localMatrix = math.NewMat4Compose(n.Position, n.Rotation, n.Scale)
	n.worldMatrixDirty = true
}

/**
 * @brief Recomputes the world matrix.
 *
 * When updateParents is set, ancestors are brought up to date first
 * (without cascading down their other children), so this node composes
 * against current data. The local matrix is always recomputed; if the
 * node is dirty or force is set, the world matrix is recomposed from
 * the parent's world matrix, the dirty flag cleared, and every direct
 * child marked dirty. Deeper descendants pick the dirtiness up when
 * their own update runs. When updateChildren is set the update
 * cascades down the whole subtree, so a single call at the root yields
 * a consistent tree.
 */
func (n *Node) UpdateWorldMatrix(force, updateChildren, updateParents bool) {
	if updateParents && n.Parent != nil {
		n.Parent.UpdateWorldMatrix(force, false, true)
	}

	n.UpdateLocalMatrix()

	if n.worldMatrixDirty || force {
		if n.Parent == nil {
			n.worldMatrix = n.localMatrix
		} else {
			// Parent's world matrix applied after the local one.
			n.worldMatrix = n.localMatrix.Mul(n.Parent.worldMatrix)
		}
		n.worldMatrixDirty = false
		core.MetricsWorldMatrixRecomputed()
		for _, child := range n.children {
			child.worldMatrixDirty = true
		}
	}

	if updateChildren {
		for _, child := range n.children {
			child.UpdateWorldMatrix(false, true, false)
		}
	}
}

/**
 * @brief Rotates the node so that its negative z axis points from its
 * world position towards target. Ancestors are refreshed first; the
 * parent's world rotation is then removed from the computed orientation
 * so the stored local rotation reproduces the desired world-facing
 * orientation once composed with the parent.
 */
func (n *Node) LookAt(target math.Vec3) {
	n.UpdateWorldMatrix(false, false, true)

	position := n.worldMatrix.Position()
	orientation := math.NewMat4LookAt(position, target, n.Up)
	rotation := math.NewQuatFromMat4(orientation)

	if n.Parent != nil {
		parentRotation := math.NewQuatFromMat4(n.Parent.worldMatrix.ExtractRotation())
		rotation = parentRotation.Inverse().Mul(rotation)
	}
	n.Rotation = rotation
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}
