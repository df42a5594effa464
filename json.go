package tagger

import (
	"bytes"
	"encoding/json"
	"io"
)

// Object is one open JSON object. It follows the same discipline as
// [Element]: every object must be ended exactly once, innermost first, and
// only the innermost open object may be written to.
type Object struct {
	j      *jsonDoc
	key    string
	depth  int
	fields int
	closed bool
}

type jsonDoc struct {
	out  sink
	open []*Object
	buf  bytes.Buffer
	enc  *json.Encoder
}

// NewObject writes "{" to w and returns the top-level object.
func NewObject(w io.Writer) *Object {
	j := &jsonDoc{}
	j.out.w = w
	j.enc = json.NewEncoder(&j.buf)
	j.enc.SetEscapeHTML(false)
	o := &Object{j: j}
	j.open = append(j.open, o)
	j.out.WriteString("{")
	return o
}

func (o *Object) String() string {
	if o.depth == 0 {
		return "top-level object"
	}
	return "object " + o.key
}

func (o *Object) enter(op string) error {
	j := o.j
	if j.out.err != nil {
		return j.out.err
	}
	if o.closed {
		panic(protocolf("%s on ended %s", op, o))
	}
	if j.open[len(j.open)-1] != o {
		panic(protocolf("%s on %s while %s not ended", op, o, j.open[len(j.open)-1]))
	}
	return nil
}

// encode writes v as a single JSON value.
func (j *jsonDoc) encode(v any) {
	j.buf.Reset()
	if err := j.enc.Encode(v); err != nil {
		j.out.err = err
		return
	}
	j.out.Write(bytes.TrimSuffix(j.buf.Bytes(), []byte("\n")))
}

func (o *Object) member(key string) {
	if o.fields > 0 {
		o.j.out.WriteString(",")
	}
	o.fields++
	o.j.encode(key)
	o.j.out.WriteString(":")
}

// Field writes "key":v. v is encoded with encoding/json; a value that
// cannot be encoded fails the document.
func (o *Object) Field(key string, v any) error {
	if err := o.enter("Field"); err != nil {
		return err
	}
	o.member(key)
	o.j.encode(v)
	return o.j.out.err
}

// Object writes "key":{ and returns the nested object, which must be
// ended.
func (o *Object) Object(key string) (*Object, error) {
	if err := o.enter("Object"); err != nil {
		return nil, err
	}
	o.member(key)
	o.j.out.WriteString("{")
	if err := o.j.out.err; err != nil {
		return nil, err
	}
	child := &Object{j: o.j, key: key, depth: o.depth + 1}
	o.j.open = append(o.j.open, child)
	return child, nil
}

// Build runs body and then ends o. If body fails the document is marked
// failed and the error is returned unchanged.
func (o *Object) Build(body func(o *Object) error) error {
	if err := body(o); err != nil {
		if o.j.out.err == nil {
			o.j.out.err = err
		}
		return err
	}
	return o.End()
}

// End writes "}" and invalidates o. Ending the top-level object flushes
// the sink if it has a Flush() error method.
func (o *Object) End() error {
	j := o.j
	if err := o.enter("End"); err != nil {
		return err
	}
	o.closed = true
	j.open = j.open[:len(j.open)-1]
	j.out.WriteString("}")
	if f, ok := j.out.w.(flusher); ok && o.depth == 0 && j.out.err == nil {
		j.out.err = f.Flush()
	}
	return j.out.err
}
