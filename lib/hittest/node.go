// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hittest

import (
	"image"
	"slices"
)

// Content is a widget occupying a node. It decides whether a point in
// the node's coordinate space hits it, and may claim points outside the
// node's bounds (a popover drawn below its host, for example).
type Content interface {
	HitTest(p image.Point) bool
}

// OverrideFunc replaces a node's hit testing entirely. It receives the
// node and a point in the node's coordinates and returns the hit node
// or nil. Implementations usually start from node.DefaultHitTest.
type OverrideFunc func(node *Node, p image.Point) *Node

// Node is one element of a retained element tree. Frame is expressed
// in the parent's coordinate space; the node's own space has its
// top-left corner at the origin.
type Node struct {
	// Name identifies the node in logs and test failures.
	Name string

	// Frame is the node's rectangle in its parent's coordinates.
	Frame image.Rectangle

	// Content, when set, owns hit testing for the node itself (after
	// children have been consulted). A Content that also implements
	// pointer.Handler receives the gestures routed to this node.
	Content Content

	// Override, when set, replaces the node's hit testing. This is
	// the explicit-override forwarding strategy; see ForwardTo.
	Override OverrideFunc

	parent           *Node
	children         []*Node
	forwardingTarget *Node
}

// NewNode creates a detached node.
func NewNode(name string, frame image.Rectangle) *Node {
	return &Node{Name: name, Frame: frame}
}

// AddChild appends child on top of the existing children, detaching it
// from any previous parent first.
func (node *Node) AddChild(child *Node) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = node
	node.children = append(node.children, child)
}

// RemoveChild detaches child. Does nothing if child is not a child of
// node.
func (node *Node) RemoveChild(child *Node) {
	index := slices.Index(node.children, child)
	if index < 0 {
		return
	}
	node.children = slices.Delete(node.children, index, index+1)
	child.parent = nil
}

// Parent returns the node's parent, or nil for a root or detached node.
func (node *Node) Parent() *Node { return node.parent }

// Children returns the node's children in back-to-front order. The
// slice is shared; callers must not modify it.
func (node *Node) Children() []*Node { return node.children }

// Bounds returns the node's rectangle in its own coordinates.
func (node *Node) Bounds() image.Rectangle {
	return image.Rectangle{Max: node.Frame.Size()}
}

// Origin returns the position of the node's top-left corner in the
// coordinate space of the root's parent (the window).
func (node *Node) Origin() image.Point {
	var origin image.Point
	for current := node; current != nil; current = current.parent {
		origin = origin.Add(current.Frame.Min)
	}
	return origin
}

// Convert translates p from the coordinate space of from into that of
// to. The nodes need not be related, but the result is only meaningful
// when they share a root.
func Convert(p image.Point, from, to *Node) image.Point {
	return p.Add(from.Origin()).Sub(to.Origin())
}

// SetForwardingTarget tags node with a descendant whose extended hit
// region node should consult when its own hit test misses. Pass nil to
// remove the tag. The tag has no effect until Enable has been called.
func (node *Node) SetForwardingTarget(target *Node) {
	node.forwardingTarget = target
}

// ForwardingTarget returns the node's forwarding tag, or nil.
func (node *Node) ForwardingTarget() *Node { return node.forwardingTarget }

// HitTest returns the deepest node under p (in node coordinates), or
// nil. This is the tree's hit-test entry point: it applies the node's
// Override if any, otherwise the default rules, and finally the
// forwarding attribute when interception is enabled.
func (node *Node) HitTest(p image.Point) *Node {
	if node.Override != nil {
		return node.Override(node, p)
	}
	if hit := node.DefaultHitTest(p); hit != nil {
		return hit
	}
	if target := node.forwardingTarget; target != nil && Enabled() {
		return target.HitTest(Convert(p, node, target))
	}
	return nil
}

// DefaultHitTest applies the standard rules: points outside the node's
// bounds skip the children; children are consulted front to back;
// then the node's Content decides, or, without Content, any point
// inside the bounds hits the node itself.
func (node *Node) DefaultHitTest(p image.Point) *Node {
	inBounds := p.In(node.Bounds())
	if inBounds {
		for index := len(node.children) - 1; index >= 0; index-- {
			child := node.children[index]
			if hit := child.HitTest(p.Sub(child.Frame.Min)); hit != nil {
				return hit
			}
		}
	}
	if node.Content != nil {
		if node.Content.HitTest(p) {
			return node
		}
		return nil
	}
	if inBounds {
		return node
	}
	return nil
}

// ForwardTo builds an Override implementing the explicit forwarding
// strategy: the node hit-tests normally, and on a miss consults target
// (usually a descendant whose content extends past this node's bounds)
// before reporting the miss.
func ForwardTo(target *Node) OverrideFunc {
	return func(node *Node, p image.Point) *Node {
		if hit := node.DefaultHitTest(p); hit != nil {
			return hit
		}
		return target.HitTest(Convert(p, node, target))
	}
}
