package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect[T any](l *List[T]) []T {
	var out []T
	for n := l.Head(); n != nil; n = n.Next() {
		out = append(out, n.Value())
	}
	return out
}

func TestList_PushTraversal(t *testing.T) {
	l := NewList[int]()
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.Head())

	for i := 1; i <= 3; i++ {
		l.Push(i)
	}
	assert.Equal(t, 3, l.Len())
	assert.False(t, l.IsEmpty())
	assert.Equal(t, []int{1, 2, 3}, collect(l))
}

func TestList_PopAndPeekUseTail(t *testing.T) {
	l := NewList[string]()
	l.Push("a")
	l.Push("b")
	l.Push("c")

	v, ok := l.Peek()
	require.True(t, ok)
	assert.Equal(t, "c", v)

	v, ok = l.Pop()
	require.True(t, ok)
	assert.Equal(t, "c", v)
	assert.Equal(t, []string{"a", "b"}, collect(l))

	l.Push("d")
	assert.Equal(t, []string{"a", "b", "d"}, collect(l), "tail is maintained after pop")

	for _, want := range []string{"d", "b", "a"} {
		v, ok = l.Pop()
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.Head())

	_, ok = l.Pop()
	assert.False(t, ok)
	_, ok = l.Peek()
	assert.False(t, ok)
}
