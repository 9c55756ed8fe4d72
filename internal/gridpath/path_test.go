package gridpath

import "testing"

func TestParseAndString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/a", "/a"},
		{"/a/b/c", "/a/b/c"},
		{"a/b", "/a/b"},
		{"/a//b", "/a/b"},
	}
	for _, c := range cases {
		if got := Parse(c.in).String(); got != c.want {
			t.Errorf("Parse(%q).String() = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAppendParent(t *testing.T) {
	p := Root().Append("a").Append("b")
	if p.String() != "/a/b" {
		t.Fatalf("got %q", p.String())
	}
	if p.Parent().String() != "/a" {
		t.Fatalf("parent = %q", p.Parent().String())
	}
	if p.Leaf() != "b" {
		t.Fatalf("leaf = %q", p.Leaf())
	}
	if Root().Parent().String() != "/" {
		t.Fatalf("parent of root must be root")
	}
}

func TestRelativeTo(t *testing.T) {
	base := Parse("/a/b")
	p := Parse("/a/b/c/d")
	rel, ok := p.RelativeTo(base)
	if !ok || rel.String() != "/c/d" {
		t.Fatalf("rel = %q ok=%v", rel.String(), ok)
	}
	if _, ok := Parse("/x").RelativeTo(base); ok {
		t.Fatalf("expected no relation")
	}
}

func TestHasPrefix(t *testing.T) {
	if !Parse("/a/b/c").HasPrefix(Parse("/a/b")) {
		t.Fatal("expected prefix match")
	}
	if Parse("/a/x").HasPrefix(Parse("/a/b")) {
		t.Fatal("expected no prefix match")
	}
	if !Parse("/a").HasPrefix(Root()) {
		t.Fatal("root prefixes everything")
	}
}

func TestLessIsTotalOrder(t *testing.T) {
	a, b := Parse("/a"), Parse("/b")
	if !a.Less(b) || b.Less(a) {
		t.Fatal("expected a < b")
	}
	if Root().Less(Root()) {
		t.Fatal("root not less than itself")
	}
	short, long := Parse("/a"), Parse("/a/b")
	if !short.Less(long) {
		t.Fatal("shorter prefix must sort first")
	}
}

func TestPrimitiveJSONRoundTrip(t *testing.T) {
	vals := []Primitive{Bool(true), Bool(false), U32(42), S32(-7), F32(1.5), String("hi")}
	for _, v := range vals {
		data, err := v.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got Primitive
		if err := got.UnmarshalJSON(data); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !got.Equal(v) {
			t.Fatalf("round trip mismatch: got %+v want %+v", got, v)
		}
	}
}

func TestPrimitiveWrongType(t *testing.T) {
	v := U32(5)
	if _, err := v.AsBool(); err == nil {
		t.Fatal("expected wrong type error")
	}
}
