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

// Package ops declares the catalog of lazy-tensor operator tags as deferred,
// resolve-once handles over the ir interning registry.
//
// The handles exist to break the initialization-order knot: they are plain
// package-level values whose construction touches nothing, so any package can
// declare or reference them during its own init, and the actual registry lookup
// happens only on first use -- exactly once per handle, from whichever goroutine
// gets there first.
package ops

import (
	"sync"
	"sync/atomic"

	"github.com/gomlx/exceptions"
	"github.com/lazytensor/ltc/ir"
	"github.com/pkg/errors"
)

// KindHandle presents one named operator kind as a process-wide, lazily
// materialized constant.
//
// Construction is side-effect-free; the registry lookup is deferred to the first
// Resolve or Kind call and performed at most once per handle on success. If the
// lookup fails the failure is not cached: the error is returned to the caller
// and a later call retries. Once a lookup succeeds every caller, concurrent or
// later, observes the same cached OpKind.
type KindHandle struct {
	name string

	mu   sync.Mutex
	done atomic.Bool
	kind ir.OpKind

	// lookup defaults to ir.GetOpKind; internal tests swap it to count calls.
	lookup func(name string) (ir.OpKind, error)
}

// NewKindHandle creates a handle for the operator kind registered under name.
// It performs no registry lookup, so it is safe to call from package-level var
// declarations and init functions.
func NewKindHandle(name string) *KindHandle {
	return &KindHandle{name: name, lookup: ir.GetOpKind}
}

// Name returns the tag name this handle resolves, without triggering resolution.
func (h *KindHandle) Name() string {
	return h.name
}

// Resolved reports whether the handle has already performed its lookup,
// without triggering one.
func (h *KindHandle) Resolved() bool {
	return h.done.Load()
}

// Resolve returns the OpKind for this handle's name, performing the registry
// lookup on first call.
//
// Concurrency: if several goroutines race on an unresolved handle, exactly one
// performs the lookup while the others block on it, and all of them observe the
// completed value. A failed lookup does not resolve the handle -- the error is
// returned and a subsequent call retries.
func (h *KindHandle) Resolve() (ir.OpKind, error) {
	if h.done.Load() {
		return h.kind, nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done.Load() {
		return h.kind, nil
	}
	kind, err := h.lookup(h.name)
	if err != nil {
		return ir.OpKind{}, errors.WithMessagef(err, "resolving op kind tag %q", h.name)
	}
	h.kind = kind
	h.done.Store(true)
	return kind, nil
}

// Kind returns the resolved OpKind, resolving on first use. It panics (with a
// stack trace) if the lookup fails; since the catalog below is built from
// known-good literal names, that only happens for handles created with a
// malformed name.
func (h *KindHandle) Kind() ir.OpKind {
	kind, err := h.Resolve()
	if err != nil {
		exceptions.Panicf("ops: %+v", err)
	}
	return kind
}

// The built-in operator tags of the lazy-tensor backend. Each labels one
// category of IR node that has no direct counterpart in the frontend operation
// set -- data movement, collectives, and view-update plumbing inserted by the
// lowering passes.
var (
	LtcAllToAll               = NewKindHandle("ltc_all_to_all")
	LtcAsStridedViewUpdate    = NewKindHandle("ltc_as_strided_view_update")
	LtcCast                   = NewKindHandle("ltc_cast")
	LtcCollectivePermute      = NewKindHandle("ltc_collective_permute")
	LtcCrossReplicaSum        = NewKindHandle("ltc_cross_replica_sum")
	LtcDeviceData             = NewKindHandle("ltc_device_data")
	LtcDiagonalViewUpdate     = NewKindHandle("ltc_diagonal_view_update")
	LtcGenericSlice           = NewKindHandle("ltc_generic_slice")
	LtcGetDimensionsSize      = NewKindHandle("ltc_get_dimensions_size")
	LtcMovingAverage          = NewKindHandle("ltc_moving_average")
	LtcNms                    = NewKindHandle("ltc_nms")
	LtcNotSupported           = NewKindHandle("ltc_not_supported")
	LtcReplicationPad         = NewKindHandle("ltc_replication_pad")
	LtcReplicationPadBackward = NewKindHandle("ltc_replication_pad_backward")
	LtcSelect                 = NewKindHandle("ltc_select")
	LtcTensorData             = NewKindHandle("ltc_tensor_data")
	LtcUnselect               = NewKindHandle("ltc_unselect")
	LtcUpdateSlice            = NewKindHandle("ltc_update_slice")
)

// Catalog returns the built-in tag handles above, in declaration order.
// Useful for tooling that wants to list or warm up the whole catalog.
func Catalog() []*KindHandle {
	return []*KindHandle{
		LtcAllToAll,
		LtcAsStridedViewUpdate,
		LtcCast,
		LtcCollectivePermute,
		LtcCrossReplicaSum,
		LtcDeviceData,
		LtcDiagonalViewUpdate,
		LtcGenericSlice,
		LtcGetDimensionsSize,
		LtcMovingAverage,
		LtcNms,
		LtcNotSupported,
		LtcReplicationPad,
		LtcReplicationPadBackward,
		LtcSelect,
		LtcTensorData,
		LtcUnselect,
		LtcUpdateSlice,
	}
}
