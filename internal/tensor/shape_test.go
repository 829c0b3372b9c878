package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
	assert.Equal(t, 5, Shape{5}.NumElements())
	assert.Equal(t, 1, Shape{}.NumElements(), "scalar shape has one element")
}

func TestShape_Validate(t *testing.T) {
	assert.NoError(t, Shape{2, 3}.Validate())
	assert.NoError(t, Shape{}.Validate())
	assert.Error(t, Shape{2, 0}.Validate())
	assert.Error(t, Shape{-1, 3}.Validate())
}

func TestShape_ComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Equal(t, []int{1}, Shape{7}.ComputeStrides())
}

func TestBroadcastShapes_Equal(t *testing.T) {
	result, needsBroadcast, err := BroadcastShapes(Shape{2, 3}, Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, result)
	assert.False(t, needsBroadcast)
}

func TestBroadcastShapes_OneDim(t *testing.T) {
	result, needsBroadcast, err := BroadcastShapes(Shape{3, 1}, Shape{3, 4})
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 4}, result)
	assert.True(t, needsBroadcast)
}

func TestBroadcastShapes_DifferentRank(t *testing.T) {
	result, needsBroadcast, err := BroadcastShapes(Shape{4}, Shape{2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3, 4}, result)
	assert.True(t, needsBroadcast)
}

func TestBroadcastShapes_Incompatible(t *testing.T) {
	_, _, err := BroadcastShapes(Shape{2, 3}, Shape{2, 4})
	assert.Error(t, err)
}
