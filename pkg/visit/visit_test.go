package visit

import (
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/psdui/pkg/uitree"
)

type recorder struct {
	prefix string
	seen   *[]string
}

func (r recorder) VisitGroup(n *uitree.GroupNode) error {
	*r.seen = append(*r.seen, r.prefix+"group:"+n.Name)
	return Nodes(n.Children, recorder{prefix: r.prefix + n.Name + "/", seen: r.seen})
}

func (r recorder) VisitImage(n *uitree.ImageNode) error {
	*r.seen = append(*r.seen, r.prefix+"image:"+n.Name)
	return nil
}

func (r recorder) VisitText(n *uitree.TextNode) error {
	*r.seen = append(*r.seen, r.prefix+"text:"+n.Name)
	return nil
}

func tree() *uitree.Root {
	return &uitree.Root{Children: []uitree.Node{
		&uitree.ImageNode{Attributes: uitree.Attributes{Name: "Bg"}},
		&uitree.GroupNode{
			Attributes: uitree.Attributes{Name: "Menu"},
			Children: []uitree.Node{
				&uitree.TextNode{Attributes: uitree.Attributes{Name: "Title"}},
				&uitree.GroupNode{
					Attributes: uitree.Attributes{Name: "Buttons"},
					Children:   []uitree.Node{&uitree.ImageNode{Attributes: uitree.Attributes{Name: "Ok"}}},
				},
			},
		},
	}}
}

func TestTree_DispatchOrder(t *testing.T) {
	var seen []string
	if err := Tree(tree(), recorder{seen: &seen}); err != nil {
		t.Fatalf("Tree: %v", err)
	}

	want := "image:Bg,group:Menu,Menu/text:Title,Menu/group:Buttons,Menu/Buttons/image:Ok"
	if got := strings.Join(seen, ","); got != want {
		t.Errorf("visit order\n got: %s\nwant: %s", got, want)
	}
}

func TestNodes_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	var images int
	v := Funcs{Image: func(n *uitree.ImageNode) error {
		images++
		return boom
	}}

	if err := Tree(tree(), v); !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
	if images != 1 {
		t.Errorf("visited %d images after error, want 1", images)
	}
}

func TestFuncs_DefaultGroupRecurses(t *testing.T) {
	var names []string
	v := Funcs{
		Image: func(n *uitree.ImageNode) error { names = append(names, n.Name); return nil },
		Text:  func(n *uitree.TextNode) error { names = append(names, n.Name); return nil },
	}
	if err := Tree(tree(), v); err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if got := strings.Join(names, ","); got != "Bg,Title,Ok" {
		t.Errorf("leaves = %s", got)
	}
}

type bogus struct{ uitree.Attributes }

func (b *bogus) Attrs() *uitree.Attributes { return &b.Attributes }
func (b *bogus) Kind() uitree.Kind         { return uitree.Kind(99) }

func TestAccept_UnknownVariant(t *testing.T) {
	if err := Accept(&bogus{}, Funcs{}); err == nil {
		t.Error("Accept should reject unknown node types")
	}
}
