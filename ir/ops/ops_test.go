package ops_test

import (
	"testing"

	"github.com/lazytensor/ltc/ir"
	"github.com/lazytensor/ltc/ir/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAndKindAgree(t *testing.T) {
	resolved, err := ops.LtcCast.Resolve()
	require.NoError(t, err)
	assert.Equal(t, resolved, ops.LtcCast.Kind())
	assert.Equal(t, "ltc_cast", resolved.Name())
}

func TestNameIdentityAcrossHandles(t *testing.T) {
	h1 := ops.NewKindHandle("ltc_select")
	h2 := ops.NewKindHandle("ltc_select")
	k1, err := h1.Resolve()
	require.NoError(t, err)
	k2, err := h2.Resolve()
	require.NoError(t, err)
	assert.Equal(t, k1, k2, "equal names must yield equal kinds across handles")
	assert.Equal(t, k1, ops.LtcSelect.Kind())
	assert.NotEqual(t, k1, ops.LtcUnselect.Kind())
}

func TestCatalog(t *testing.T) {
	catalog := ops.Catalog()
	require.Len(t, catalog, 18)
	seen := make(map[ir.OpKind]string, len(catalog))
	for _, h := range catalog {
		kind := h.Kind()
		assert.True(t, kind.IsValid())
		assert.Equal(t, h.Name(), kind.Name())
		if prev, dup := seen[kind]; dup {
			t.Errorf("tags %q and %q resolved to the same kind", prev, h.Name())
		}
		seen[kind] = h.Name()
	}
}

func TestCatalogKindsLabelNodes(t *testing.T) {
	data := ir.NewNode(ops.LtcDeviceData.Kind())
	cast := ir.NewNode(ops.LtcCast.Kind(), data)
	assert.True(t, cast.IsA(ops.LtcCast.Kind()))
	assert.False(t, cast.IsA(ops.LtcDeviceData.Kind()))
	assert.True(t, data.IsA(ops.LtcDeviceData.Kind()))
}

func TestMalformedHandleName(t *testing.T) {
	h := ops.NewKindHandle("not a symbol")
	_, err := h.Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a symbol")
	assert.False(t, h.Resolved())
	require.Panics(t, func() { h.Kind() })
}
