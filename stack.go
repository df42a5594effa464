package tagger

import "io"

// Stack is a document whose open elements are kept on a heap-allocated
// stack instead of in local variables. It suits code that cannot express
// the nesting lexically, e.g. a function that opens elements and returns,
// leaving its caller to close them.
//
// Push and Pop must balance. Finish ends whatever is still open, innermost
// first, so a caller that does not know the depth can still produce a
// well-formed document.
type Stack struct {
	root *Element
	open []*Element
}

// NewStack starts a document on w.
func NewStack(w io.Writer, opts ...Option) *Stack {
	return &Stack{root: New(w, opts...)}
}

// Top returns the innermost open element, or the document root when the
// stack is empty. It can be used with the lexical API; any element opened
// through it must be ended before the stack is used again.
func (s *Stack) Top() *Element {
	if n := len(s.open); n > 0 {
		return s.open[n-1]
	}
	return s.root
}

// Len returns the number of elements still open.
func (s *Stack) Len() int { return len(s.open) }

// Push writes a start tag and keeps its end tag owed on the stack.
// attrs may be nil.
func (s *Stack) Push(tag string, attrs func(a *Attrs)) error {
	a := s.Top().Start(tag)
	if attrs != nil {
		attrs(a)
	}
	e, err := a.Open()
	if err != nil {
		return err
	}
	s.open = append(s.open, e)
	return nil
}

// Single writes a self-closing element inside the top of the stack.
func (s *Stack) Single(tag string, attrs func(a *Attrs)) error {
	return s.Top().Single(tag, attrs)
}

// Text writes escaped content inside the top of the stack.
func (s *Stack) Text(v any) error {
	return s.Top().Text(v)
}

// Raw writes unescaped content inside the top of the stack.
func (s *Stack) Raw(v any) error {
	return s.Top().Raw(v)
}

// Pop writes the end tag of the innermost element and removes it. Popping
// an empty stack panics.
func (s *Stack) Pop() error {
	n := len(s.open)
	if n == 0 {
		if d := s.root.d; d.failed() {
			return d.out.err
		}
		panic(protocolf("Pop on empty stack"))
	}
	e := s.open[n-1]
	s.open = s.open[:n-1]
	return e.End()
}

// Finish pops every remaining element, innermost first, and then ends the
// document.
func (s *Stack) Finish() error {
	for len(s.open) > 0 {
		if err := s.Pop(); err != nil {
			return err
		}
	}
	return s.root.End()
}

// CheckUnwound panics if elements are still open, unless the document has
// already failed. Call it where all pushes are known to have been popped.
func (s *Stack) CheckUnwound() {
	if len(s.open) == 0 || s.root.d.failed() {
		return
	}
	panic(protocolf("stack not unwound: %s not ended", openTags(s.open)))
}
