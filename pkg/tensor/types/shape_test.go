package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapeSize(t *testing.T) {
	assert.Equal(t, 1, NewShape().Size())
	assert.Equal(t, 12, NewShape(3, 4).Size())
	assert.Equal(t, 0, NewShape(3, 0).Size())
}

func TestShapeEqual(t *testing.T) {
	assert.True(t, NewShape(2, 3).Equal(NewShape(2, 3)))
	assert.False(t, NewShape(2, 3).Equal(NewShape(3, 2)))
	assert.False(t, NewShape(2, 3).Equal(NewShape(2, 3, 1)))
}

func TestShapeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, NewShape(2, 3, 4).Strides(nil))
	assert.True(t, NewShape(2, 3).IsContiguous([]int{3, 1}))
	assert.False(t, NewShape(2, 3).IsContiguous([]int{1, 2}))
}

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, NewShape(2, 3).Validate())
	assert.NoError(t, NewShape(0).Validate())
	assert.Error(t, NewShape(-1, 3).Validate())
	assert.Error(t, NewShape(1, 1, 1, 1, 1, 1, 1, 1, 1).Validate())
}

func TestDataTypeRoundTrip(t *testing.T) {
	kinds := []DataType{BOOL, INT8, UINT8, INT16, UINT16, INT32, UINT32, INT64, UINT64, FP32, FP64}
	for _, dt := range kinds {
		data := MakeTensorData(dt, 3)
		assert.Equal(t, dt, TypeFromData(data), dt.String())
		assert.Equal(t, 3, DataLen(data))
	}

	assert.Nil(t, MakeTensorData(FP16, 3))
	assert.Nil(t, MakeTensorData(UNKNOWN, 3))
}
