package ir_test

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	. "github.com/lazytensor/ltc/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpKindIdentity(t *testing.T) {
	cast1, err := GetOpKind("test_identity_cast")
	require.NoError(t, err)
	cast2, err := GetOpKind("test_identity_cast")
	require.NoError(t, err)
	selectKind, err := GetOpKind("test_identity_select")
	require.NoError(t, err)

	assert.True(t, cast1.IsValid())
	assert.Equal(t, cast1, cast2)
	assert.Equal(t, cast1.Id(), cast2.Id())
	assert.NotEqual(t, cast1, selectKind)
	assert.Equal(t, "test_identity_cast", cast1.Name())
	assert.Equal(t, "test_identity_cast", cast1.String())
}

func TestOpKindZeroValueIsInvalid(t *testing.T) {
	var invalid OpKind
	assert.False(t, invalid.IsValid())
	assert.Equal(t, SymbolId(0), invalid.Id())
	assert.Equal(t, "", invalid.Name())
	assert.Equal(t, "OpKind(invalid)", invalid.String())

	kind := MustOpKind("test_zero_value_probe")
	assert.NotEqual(t, invalid, kind)
}

func TestGetOpKindMalformedNames(t *testing.T) {
	for _, name := range []string{"", "has space", "has\ttab", "has\nnewline", "ctrl\x00char"} {
		_, err := GetOpKind(name)
		assert.Errorf(t, err, "name %q should be rejected", name)
	}
	require.Panics(t, func() { MustOpKind("bad name") })
}

func TestRegisteredOpKinds(t *testing.T) {
	before := NumRegisteredOpKinds()
	MustOpKind("test_registered_zebra")
	MustOpKind("test_registered_aardvark")
	MustOpKind("test_registered_zebra") // Re-interning must not add an entry.
	assert.Equal(t, before+2, NumRegisteredOpKinds())

	names := RegisteredOpKinds()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "test_registered_zebra")
	assert.Contains(t, names, "test_registered_aardvark")
}

func TestGetOpKindConcurrent(t *testing.T) {
	const numGoroutines = 100
	before := NumRegisteredOpKinds()
	kinds := make([]OpKind, numGoroutines)
	var wg sync.WaitGroup
	var start sync.WaitGroup
	start.Add(1)
	for ii := 0; ii < numGoroutines; ii++ {
		wg.Add(1)
		go func(ii int) {
			defer wg.Done()
			start.Wait()
			// Half the goroutines intern a shared name, half a per-goroutine one.
			name := "test_concurrent_shared"
			if ii%2 == 1 {
				name = fmt.Sprintf("test_concurrent_%d", ii)
			}
			kinds[ii] = MustOpKind(name)
		}(ii)
	}
	start.Done()
	wg.Wait()

	shared := MustOpKind("test_concurrent_shared")
	for ii := 0; ii < numGoroutines; ii += 2 {
		assert.Equal(t, shared, kinds[ii])
	}
	// 1 shared name + 50 distinct per-goroutine names.
	assert.Equal(t, before+51, NumRegisteredOpKinds())
}
