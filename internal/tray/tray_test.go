package tray

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/five82/apodbar/internal/state"
)

func TestBuild_FixedOrder(t *testing.T) {
	menu := Build(state.Info{Title: "Comet - 2024-07-09"}, LabelsFor("en"))

	want := []string{IDTitle, IDPrev, IDNext, IDToday, IDRandom, IDHD, IDExit}
	if len(menu.Items) != len(want) {
		t.Fatalf("items = %d, want %d", len(menu.Items), len(want))
	}
	for i, id := range want {
		if menu.Items[i].ID != id {
			t.Fatalf("item %d = %q, want %q", i, menu.Items[i].ID, id)
		}
		if !menu.Items[i].Enabled {
			t.Fatalf("item %q disabled", id)
		}
	}
	if menu.Items[0].Label != "Comet - 2024-07-09" {
		t.Fatalf("title item label = %q", menu.Items[0].Label)
	}
	if menu.Tooltip != "Comet - 2024-07-09" {
		t.Fatalf("tooltip = %q, want the title", menu.Tooltip)
	}
}

func TestBuild_HDCheckGlyph(t *testing.T) {
	labels := LabelsFor("en")
	cases := []struct {
		hd      bool
		checked bool
	}{
		{hd: true, checked: true},
		{hd: false, checked: false},
	}
	for _, tc := range cases {
		menu := Build(state.Info{Date: time.Now(), HD: tc.hd}, labels)
		hd := menu.Items[5]
		if hd.ID != IDHD {
			t.Fatalf("item 5 = %q, want hd", hd.ID)
		}
		if got := strings.Contains(hd.Label, CheckGlyph); got != tc.checked {
			t.Fatalf("hd=%v label %q contains glyph = %v, want %v", tc.hd, hd.Label, got, tc.checked)
		}
		if hd.Checked != tc.checked {
			t.Fatalf("hd=%v Checked = %v", tc.hd, hd.Checked)
		}
	}
}

func TestBuild_EmptyTitleFallsBackToAppName(t *testing.T) {
	labels := LabelsFor("en")
	if got := Build(state.Info{}, labels).Tooltip; got != labels.AppName {
		t.Fatalf("tooltip = %q, want %q", got, labels.AppName)
	}
}

func TestParseAction(t *testing.T) {
	cases := map[string]Action{
		IDTitle:  ActionCopyTitle,
		IDPrev:   ActionPrevious,
		IDNext:   ActionNext,
		IDToday:  ActionToday,
		IDRandom: ActionRandom,
		IDHD:     ActionToggleHD,
		IDExit:   ActionExit,
	}
	for id, want := range cases {
		got, ok := ParseAction(id)
		if !ok || got != want {
			t.Fatalf("ParseAction(%q) = %v, %v; want %v", id, got, ok, want)
		}
	}
	if _, ok := ParseAction("1001"); ok {
		t.Fatalf("ParseAction accepted an unknown id")
	}
	if ActionToggleHD.String() != "toggle-hd" || ActionNone.String() != "none" {
		t.Fatalf("unexpected Action strings")
	}
}

func TestLabelsFor(t *testing.T) {
	if LabelsFor("zh_CN.UTF-8").Previous != "上一张" {
		t.Fatalf("zh_CN did not select Chinese labels")
	}
	if LabelsFor("de").Previous != "Previous" {
		t.Fatalf("unknown locale did not fall back to English")
	}
	if LabelsFor("").Exit != "Exit" {
		t.Fatalf("empty locale did not fall back to English")
	}
}

func TestIcon(t *testing.T) {
	data := Icon("linux")
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("linux icon is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != iconSize || b.Dy() != iconSize {
		t.Fatalf("icon size = %v", b)
	}

	ico := Icon("windows")
	var hdr [3]uint16
	if err := binary.Read(bytes.NewReader(ico[:6]), binary.LittleEndian, &hdr); err != nil {
		t.Fatalf("read ICONDIR: %v", err)
	}
	if hdr != [3]uint16{0, 1, 1} {
		t.Fatalf("ICONDIR = %v, want [0 1 1]", hdr)
	}
	offset := binary.LittleEndian.Uint32(ico[18:22])
	size := binary.LittleEndian.Uint32(ico[14:18])
	if int(offset)+int(size) != len(ico) {
		t.Fatalf("ICO entry offset %d + size %d != %d", offset, size, len(ico))
	}
	if !bytes.Equal(ico[offset:], data) {
		t.Fatalf("ICO payload is not the PNG icon")
	}
}

type fakeItem struct {
	title, tooltip string
	enabled        bool
}

func (f *fakeItem) SetTitle(s string)   { f.title = s }
func (f *fakeItem) SetTooltip(s string) { f.tooltip = s }
func (f *fakeItem) Enable()             { f.enabled = true }
func (f *fakeItem) Disable()            { f.enabled = false }

type fakeAdder struct {
	labels     []string
	separators int
}

func (a *fakeAdder) AddSeparator() { a.separators++ }

func (a *fakeAdder) AddItem(label, tooltip string) (menuItem, <-chan struct{}) {
	a.labels = append(a.labels, label)
	return &fakeItem{title: label, tooltip: tooltip, enabled: true}, make(chan struct{})
}

func TestApplyItem(t *testing.T) {
	mi := &fakeItem{}
	applyItem(mi, Item{Label: "Download HD", Tooltip: "tip", Enabled: true})
	if mi.title != "Download HD" || mi.tooltip != "tip" || !mi.enabled {
		t.Fatalf("item = %+v after apply", mi)
	}
	applyItem(mi, Item{Label: "Download HD" + CheckGlyph, Checked: true})
	if mi.title != "Download HD"+CheckGlyph || mi.enabled {
		t.Fatalf("item = %+v, want glyph label and disabled", mi)
	}
}

func TestPopulate_WithoutRenderStillCreatesItems(t *testing.T) {
	tr := New(Icon("linux"))
	t.Cleanup(tr.onExit)
	adder := &fakeAdder{}

	tr.mu.Lock()
	menu := tr.populate(adder)
	tr.mu.Unlock()

	if len(adder.labels) != len(itemOrder) || len(tr.items) != len(itemOrder) {
		t.Fatalf("created %d items (%d tracked), want %d", len(adder.labels), len(tr.items), len(itemOrder))
	}
	if adder.separators != 1 {
		t.Fatalf("separators = %d, want 1", adder.separators)
	}
	if !tr.ready || menu.Tooltip != LabelsFor("").AppName {
		t.Fatalf("ready = %v tooltip = %q after populate", tr.ready, menu.Tooltip)
	}

	// A later render relabels the placeholder items.
	rendered := Build(state.Info{Title: "Comet - 2024-07-09", HD: true}, LabelsFor("en"))
	for _, it := range rendered.Items {
		applyItem(tr.items[it.ID], it)
	}
	if got := tr.items[IDTitle].(*fakeItem).title; got != "Comet - 2024-07-09" {
		t.Fatalf("title item = %q after render", got)
	}
	if got := tr.items[IDHD].(*fakeItem).title; !strings.HasSuffix(got, CheckGlyph) {
		t.Fatalf("hd item = %q, want check glyph", got)
	}
}

func TestPopulate_UsesRenderedMenu(t *testing.T) {
	tr := New(Icon("linux"))
	t.Cleanup(tr.onExit)
	tr.Render(Build(state.Info{Title: "Comet - 2024-07-09", HD: true}, LabelsFor("zh")))

	adder := &fakeAdder{}
	tr.mu.Lock()
	tr.populate(adder)
	tr.mu.Unlock()

	if adder.labels[0] != "Comet - 2024-07-09" || adder.labels[1] != "上一张" {
		t.Fatalf("labels = %v, want the rendered menu", adder.labels)
	}
	if adder.labels[5] != "下载高清图"+CheckGlyph {
		t.Fatalf("hd label = %q, want glyph on a plain item", adder.labels[5])
	}
}

func TestRenderBeforeReadyOnlyRecords(t *testing.T) {
	tr := New(Icon("linux"))
	menu := Build(state.Info{Title: "x"}, LabelsFor("en"))
	tr.Render(menu)
	if tr.current.Tooltip != "x" || len(tr.items) != 0 {
		t.Fatalf("Render before ready should only record the menu")
	}
	// Quit before Run must not touch the native tray.
	tr.Quit()
	if !tr.quitting {
		t.Fatalf("Quit did not record the request")
	}
}
