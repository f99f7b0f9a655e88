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

// Package ir holds the symbolic layer of the lazy-tensor intermediate representation:
// interned operator kinds and the nodes they label.
//
// Operator kinds are process-wide interned symbols: GetOpKind("ltc_cast") returns
// the same OpKind value no matter how many times (or from how many goroutines) it
// is called, so kinds can be compared with `==` for dispatch. Interning takes a
// lock, so hot paths should hold the resolved OpKind rather than the name; see
// package github.com/lazytensor/ltc/ir/ops for deferred, resolve-once handles
// over the catalog of built-in tags.
package ir

import (
	"sync"
	"unicode"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"k8s.io/klog/v2"
)

// SymbolId numbers interned operator-kind names, in interning order starting at 1.
// The zero value is reserved for the invalid OpKind.
type SymbolId int32

// OpKind is an interned, value-comparable identifier for one category of IR
// operation. Equal names always yield equal OpKinds, so `==` is the dispatch
// operation ("is this node a cast node?"). It is a single int32 underneath,
// cheap to copy and safe to hold by value for the process lifetime.
//
// The zero value is invalid: it compares unequal to every interned kind and
// IsValid reports false.
type OpKind struct {
	id SymbolId
}

// symbolTable is the process-wide interning registry mapping names to OpKinds.
// Reads vastly outnumber writes: after warm-up every lookup takes the RLock path.
type symbolTable struct {
	mu     sync.RWMutex
	byName map[string]OpKind
	names  []string // indexed by SymbolId-1
}

var symbols = &symbolTable{byName: make(map[string]OpKind)}

// GetOpKind interns name and returns its canonical OpKind. It is idempotent --
// repeated calls with the same name return equal OpKinds -- and safe to call from
// arbitrary goroutines.
//
// It returns an error for malformed names: empty, or containing whitespace or
// control characters. Operator-kind names are symbols, not free text.
func GetOpKind(name string) (OpKind, error) {
	if err := validateOpName(name); err != nil {
		return OpKind{}, err
	}
	symbols.mu.RLock()
	kind, found := symbols.byName[name]
	symbols.mu.RUnlock()
	if found {
		return kind, nil
	}

	symbols.mu.Lock()
	defer symbols.mu.Unlock()
	// Another goroutine may have interned it between the two locks.
	if kind, found = symbols.byName[name]; found {
		return kind, nil
	}
	symbols.names = append(symbols.names, name)
	kind = OpKind{id: SymbolId(len(symbols.names))}
	symbols.byName[name] = kind
	klog.V(2).Infof("ir: interned op kind %q as symbol #%d", name, kind.id)
	return kind, nil
}

// MustOpKind is like GetOpKind but panics (with a stack trace) on malformed names.
// Convenient for fixed catalogs of known-good names.
func MustOpKind(name string) OpKind {
	kind, err := GetOpKind(name)
	if err != nil {
		exceptions.Panicf("ir.MustOpKind(%q): %+v", name, err)
	}
	return kind
}

func validateOpName(name string) error {
	if name == "" {
		return errors.New("op kind name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return errors.Errorf("op kind name %q contains whitespace or control characters", name)
		}
	}
	return nil
}

// IsValid reports whether k refers to an interned operator kind.
// The zero OpKind is invalid.
func (k OpKind) IsValid() bool {
	return k.id > 0
}

// Id returns the interned symbol id backing k, 0 if k is invalid.
func (k OpKind) Id() SymbolId {
	return k.id
}

// Name returns the name k was interned under, or "" for the invalid OpKind.
func (k OpKind) Name() string {
	if !k.IsValid() {
		return ""
	}
	symbols.mu.RLock()
	defer symbols.mu.RUnlock()
	return symbols.names[k.id-1]
}

// String implements fmt.Stringer.
func (k OpKind) String() string {
	if !k.IsValid() {
		return "OpKind(invalid)"
	}
	return k.Name()
}

// RegisteredOpKinds returns the sorted names of every operator kind interned so
// far. It is a snapshot: kinds interned afterwards are not reflected.
func RegisteredOpKinds() []string {
	symbols.mu.RLock()
	names := maps.Keys(symbols.byName)
	symbols.mu.RUnlock()
	slices.Sort(names)
	return names
}

// NumRegisteredOpKinds returns how many distinct operator kinds have been
// interned so far.
func NumRegisteredOpKinds() int {
	symbols.mu.RLock()
	defer symbols.mu.RUnlock()
	return len(symbols.names)
}
