/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package ir

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gomlx/exceptions"
)

// NodeId is a process-wide unique id assigned to each Node in creation order.
type NodeId int64

// InvalidNodeId is returned by Node.Id for a nil Node.
const InvalidNodeId = NodeId(-1)

var nextNodeId atomic.Int64

// Node is one operation in the lazy computation graph, labeled by its OpKind.
//
// This is the minimal labeled node: an OpKind, the operand edges and the number
// of outputs the operation produces. Lowering, shapes and execution belong to
// the backend layers and are not represented here. Dispatch over nodes compares
// kinds by value, typically through IsA.
type Node struct {
	kind       OpKind
	operands   []*Node
	numOutputs int
	id         NodeId
}

// NewNode creates a Node labeled with kind and the given operands, producing a
// single output. It panics if kind is invalid.
func NewNode(kind OpKind, operands ...*Node) *Node {
	return NewNodeWithOutputs(kind, 1, operands...)
}

// NewNodeWithOutputs is like NewNode for operations producing numOutputs values.
func NewNodeWithOutputs(kind OpKind, numOutputs int, operands ...*Node) *Node {
	if !kind.IsValid() {
		exceptions.Panicf("ir.NewNode: invalid OpKind -- use ir.GetOpKind or an ops handle to obtain one")
	}
	return &Node{
		kind:       kind,
		operands:   operands,
		numOutputs: numOutputs,
		id:         NodeId(nextNodeId.Add(1) - 1),
	}
}

// Kind returns the operator kind labeling this node. It returns the invalid
// OpKind for a nil Node.
func (n *Node) Kind() OpKind {
	if n == nil {
		return OpKind{}
	}
	return n.kind
}

// IsA reports whether this node is labeled with kind. Nil nodes match nothing.
func (n *Node) IsA(kind OpKind) bool {
	return n != nil && kind.IsValid() && n.kind == kind
}

// Operands are the input edges of this node in the computation graph.
// The returned slice is owned by the node and must not be modified.
func (n *Node) Operands() []*Node {
	if n == nil {
		return nil
	}
	return n.operands
}

// NumOperands returns the number of input edges.
func (n *Node) NumOperands() int {
	if n == nil {
		return 0
	}
	return len(n.operands)
}

// NumOutputs returns the number of values this operation produces.
func (n *Node) NumOutputs() int {
	if n == nil {
		return 0
	}
	return n.numOutputs
}

// Id is the unique id of this node, assigned in creation order.
func (n *Node) Id() NodeId {
	if n == nil {
		return InvalidNodeId
	}
	return n.id
}

// String implements fmt.Stringer, rendering the node with its kind and the ids
// of its operands.
func (n *Node) String() string {
	if n == nil {
		return "Node(nil)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s(#%d", n.kind, n.id)
	if len(n.operands) > 0 {
		b.WriteString("; operands=[")
		for ii, operand := range n.operands {
			if ii > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "#%d", operand.Id())
		}
		b.WriteString("]")
	}
	if n.numOutputs != 1 {
		fmt.Fprintf(&b, "; outputs=%d", n.numOutputs)
	}
	b.WriteString(")")
	return b.String()
}
