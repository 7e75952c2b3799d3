package esthetic

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/agiangrant/esthetic/option"
	"github.com/agiangrant/esthetic/source"
)

const colorPage = `<form>` +
	`<div class="esthetic"><select name="color">` +
	`<option value="r">Red</option>` +
	`<optgroup label="Cool"><option value="b" selected>Blue</option><option value="g">Green</option></optgroup>` +
	`</select></div>` +
	`<div class="esthetic"><select name="size"><option>S</option><option>M</option></select></div>` +
	`</form>`

func enhance(t *testing.T, markup string) (*Controller, *html.Node, []*Widget) {
	t.Helper()
	c, err := NewController(DefaultConfig())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	doc, err := source.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	widgets, err := c.Enhance(doc)
	if err != nil {
		t.Fatalf("Enhance: %v", err)
	}
	return c, doc, widgets
}

func writeDoc(t *testing.T, c *Controller, doc *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Write(&buf, doc); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.String()
}

func TestControllerEnhance(t *testing.T) {
	c, doc, widgets := enhance(t, colorPage)

	if len(widgets) != 2 {
		t.Fatalf("Enhance built %d widgets, want 2", len(widgets))
	}
	color, size := widgets[0], widgets[1]
	if color.Name() != "color" || size.Name() != "size" {
		t.Errorf("names = %q, %q", color.Name(), size.Name())
	}
	if size.Value() != "S" {
		t.Errorf("size defaults to its first option, got %q", size.Value())
	}

	out := writeDoc(t, c, doc)
	if strings.Contains(out, "<select") {
		t.Errorf("select elements not replaced: %s", out)
	}
	want := `<div class="esthetic">` +
		`<button class="esthetic-trigger"><span>Blue</span></button>` +
		`<div class="esthetic-list"></div>` +
		`<input type="hidden" class="esthetic-input" name="color" value="b"/>` +
		`</div>`
	if !strings.Contains(out, want) {
		t.Errorf("output missing enhanced color control:\n%s", out)
	}

	if host, ok := c.Host(color.ID()); !ok || !source.HasClass(host, "esthetic") {
		t.Errorf("Host(color) = %v, %v", host, ok)
	}
	if got := c.Form().Encode(); got != "color=b&size=S" {
		t.Errorf("form values = %q", got)
	}
}

func TestControllerDispatch(t *testing.T) {
	c, doc, widgets := enhance(t, colorPage)
	color, size := widgets[0], widgets[1]

	handled, err := c.Dispatch(color.ID(), NewEvent("mousedown", TargetTrigger))
	if err != nil || !handled {
		t.Fatalf("Dispatch = %v, %v", handled, err)
	}
	if !color.Visible() || size.Visible() {
		t.Fatalf("after opening color: color=%v size=%v", color.Visible(), size.Visible())
	}
	if out := writeDoc(t, c, doc); !strings.Contains(out, `<div class="esthetic-list"><ul><li class="esthetic-item">`) {
		t.Errorf("open list not rendered visible:\n%s", out)
	}

	if _, err := c.Dispatch(size.ID(), NewEvent("focusin", TargetTrigger)); err != nil {
		t.Fatal(err)
	}
	if color.Visible() || !size.Visible() {
		t.Fatalf("after opening size: color=%v size=%v", color.Visible(), size.Visible())
	}

	if _, err := c.Dispatch(size.ID(), NewItemEvent("mousedown", "M")); err != nil {
		t.Fatal(err)
	}
	if size.Visible() || size.Value() != "M" || c.Form().Value("size") != "M" {
		t.Errorf("after picking M: visible=%v value=%q form=%v", size.Visible(), size.Value(), c.Form().Value("size"))
	}
	out := writeDoc(t, c, doc)
	if !strings.Contains(out, `<span>M</span>`) || !strings.Contains(out, `name="size" value="M"/>`) {
		t.Errorf("selection not written:\n%s", out)
	}

	if _, err := c.Dispatch(ID(99), NewEvent("mousedown", TargetTrigger)); !errors.Is(err, ErrUnknownWidget) {
		t.Errorf("unknown id error = %v", err)
	}
	if handled, err := c.Dispatch(color.ID(), nil); handled || err != nil {
		t.Errorf("nil event = %v, %v", handled, err)
	}

	color.Open()
	c.CloseAll()
	if _, ok := c.Registry().Visible(); ok {
		t.Error("CloseAll() left a widget open")
	}
}

func TestControllerNestedHosts(t *testing.T) {
	c, _, widgets := enhance(t, `<div class="esthetic">`+
		`<div class="esthetic"><select name="inner"><option>a</option></select></div>`+
		`<select name="outer"><option>b</option></select>`+
		`</div>`)

	if len(widgets) != 2 {
		t.Fatalf("Enhance built %d widgets, want 2", len(widgets))
	}
	outer, inner := widgets[0], widgets[1]
	if outer.Name() != "outer" || inner.Name() != "inner" {
		t.Fatalf("names = %q, %q", outer.Name(), inner.Name())
	}

	if _, err := c.Dispatch(inner.ID(), NewEvent("mousedown", TargetTrigger)); err != nil {
		t.Fatal(err)
	}
	if !inner.Visible() || outer.Visible() {
		t.Errorf("the inner widget stops the event: inner=%v outer=%v", inner.Visible(), outer.Visible())
	}

	handled, err := c.Dispatch(inner.ID(), NewEvent("click", TargetTrigger))
	if err != nil || handled {
		t.Errorf("click bubbled through both widgets unhandled: got %v, %v", handled, err)
	}
}

// nestedGroupPage builds a document the HTML parser cannot produce: the second
// host's select has an optgroup inside an optgroup.
func nestedGroupPage() (*html.Node, *html.Node) {
	el := func(a atom.Atom, attrs ...html.Attribute) *html.Node {
		return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
	}
	class := html.Attribute{Key: "class", Val: "esthetic"}

	doc := &html.Node{Type: html.DocumentNode}
	body := el(atom.Body)
	doc.AppendChild(body)

	good := el(atom.Div, class)
	goodSel := el(atom.Select, html.Attribute{Key: "name", Val: "good"})
	opt := el(atom.Option)
	opt.AppendChild(&html.Node{Type: html.TextNode, Data: "x"})
	goodSel.AppendChild(opt)
	good.AppendChild(goodSel)
	body.AppendChild(good)

	bad := el(atom.Div, class)
	badSel := el(atom.Select, html.Attribute{Key: "name", Val: "bad"})
	outer := el(atom.Optgroup, html.Attribute{Key: "label", Val: "outer"})
	outer.AppendChild(el(atom.Optgroup, html.Attribute{Key: "label", Val: "inner"}))
	badSel.AppendChild(outer)
	bad.AppendChild(badSel)
	body.AppendChild(bad)

	return doc, goodSel
}

func TestControllerEnhanceFailsWhole(t *testing.T) {
	c, err := NewController(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	doc, goodSel := nestedGroupPage()

	var before bytes.Buffer
	if err := html.Render(&before, doc); err != nil {
		t.Fatal(err)
	}

	widgets, err := c.Enhance(doc)
	if !errors.Is(err, option.ErrNestedGroup) || !IsConstructionError(err) {
		t.Fatalf("Enhance error = %v, want construction error wrapping ErrNestedGroup", err)
	}
	if widgets != nil {
		t.Errorf("widgets = %v, want nil", widgets)
	}
	if c.Registry().Len() != 0 {
		t.Errorf("registry has %d widgets", c.Registry().Len())
	}
	if goodSel.Parent == nil {
		t.Error("valid control detached despite the failure")
	}

	var after bytes.Buffer
	if err := html.Render(&after, doc); err != nil {
		t.Fatal(err)
	}
	if before.String() != after.String() {
		t.Errorf("document changed:\n%s\n%s", before.String(), after.String())
	}
}

func TestControllerAddAndTeardown(t *testing.T) {
	rec := &recorder{}
	c, err := NewController(Config{}, rec)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	if c.Config().Classes.Host != "esthetic" {
		t.Errorf("empty config not defaulted: %+v", c.Config())
	}

	w, err := c.Add(colorSource())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(rec.created) != 1 {
		t.Errorf("observer not attached: %v", rec.created)
	}
	if _, ok := c.Host(w.ID()); ok {
		t.Error("added widget has no host")
	}
	if got, ok := c.Widget(w.ID()); !ok || got != w {
		t.Error("Widget() did not return the added widget")
	}
	if c.Form().Value("color") != "b" {
		t.Errorf("form value = %v", c.Form().Value("color"))
	}

	c.Teardown()
	if len(c.Widgets()) != 0 || len(c.Form().Fields()) != 0 {
		t.Errorf("after Teardown: %d widgets, fields %v", len(c.Widgets()), c.Form().Fields())
	}
	if _, err := c.Dispatch(w.ID(), NewEvent("mousedown", TargetTrigger)); !errors.Is(err, ErrUnknownWidget) {
		t.Errorf("dispatch after teardown = %v", err)
	}

	bad := DefaultConfig()
	bad.Events = []string{"two words"}
	if _, err := NewController(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewController(bad) = %v", err)
	}
}
