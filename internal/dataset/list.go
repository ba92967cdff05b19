package dataset

// List is a singly-linked ordered container.
//
// Push appends at the tail. Pop and Peek operate on the tail as well, so the
// container behaves as a stack for Push/Pop while Head/Next traversal visits
// elements in insertion order. Pop walks from the head to find the new tail.
type List[T any] struct {
	head *Node[T]
	tail *Node[T]
	size int
}

// Node is one element of a List.
type Node[T any] struct {
	value T
	next  *Node[T]
}

// NewList creates an empty list.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// Head returns the first node, or nil when the list is empty.
func (l *List[T]) Head() *Node[T] {
	return l.head
}

// Push appends v at the tail.
func (l *List[T]) Push(v T) {
	node := &Node[T]{value: v}
	if l.head == nil {
		l.head = node
	} else {
		l.tail.next = node
	}
	l.tail = node
	l.size++
}

// Pop removes and returns the tail element.
func (l *List[T]) Pop() (T, bool) {
	var zero T
	if l.head == nil {
		return zero, false
	}

	var prev *Node[T]
	node := l.head
	for node.next != nil {
		prev = node
		node = node.next
	}
	if prev == nil {
		l.head = nil
		l.tail = nil
	} else {
		prev.next = nil
		l.tail = prev
	}
	l.size--
	return node.value, true
}

// Peek returns the tail element without removing it.
func (l *List[T]) Peek() (T, bool) {
	var zero T
	if l.tail == nil {
		return zero, false
	}
	return l.tail.value, true
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return l.size
}

// IsEmpty reports whether the list has no elements.
func (l *List[T]) IsEmpty() bool {
	return l.size == 0
}

// Value returns the element stored in n.
func (n *Node[T]) Value() T {
	return n.value
}

// Next returns the following node, or nil at the end of the list.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}
